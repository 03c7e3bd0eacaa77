package fanout

import (
	"bombrobots/internal/lobby"
	"bombrobots/internal/wire"
)

// RunSender sends the full protocol history to its client regardless
// of when it connected, looping back to the lobby phase after every
// game so one TCP connection serves many successive games.
func RunSender(c *Client) {
	cfg := c.state.Config()
	if err := c.send(wire.NewHello(cfg.ServerName, cfg.PlayersCount, cfg.SizeX, cfg.SizeY, cfg.GameLength, cfg.ExplosionRadius, cfg.BombTimer)); err != nil {
		c.fail("sender", err)
		return
	}

	for {
		if err := c.replayLobby(); err != nil {
			c.fail("sender", err)
			return
		}
		players := c.state.PlayersSnapshot()
		if err := c.send(wire.NewGameStarted(players)); err != nil {
			c.fail("sender", err)
			return
		}
		if err := c.replayTurns(); err != nil {
			c.fail("sender", err)
			return
		}
		scores := c.state.ScoresSnapshot()
		if err := c.send(wire.NewGameEnded(scores)); err != nil {
			c.fail("sender", err)
			return
		}
	}
}

// replayLobby sends AcceptedPlayer for every player registered since
// this sender last looked, blocking on new_players until the lobby
// either grows or starts the game. Player ids are assigned densely
// from 0 within a lobby cycle, so the local cursor doubles as the
// next id to replay.
func (c *Client) replayLobby() error {
	cursor := 0
	for {
		c.state.WaitForNewPlayerOrGameStart(cursor)
		players := c.state.PlayersSnapshot()
		for cursor < len(players) {
			id := wire.PlayerId(cursor)
			p, ok := players[id]
			if !ok {
				break
			}
			if err := c.send(wire.NewAcceptedPlayer(id, p)); err != nil {
				return err
			}
			cursor++
		}
		if c.state.GameState() == lobby.Game {
			return nil
		}
	}
}

// replayTurns sends every turn appended since this sender last
// looked, blocking on new_turn until the log grows or the game ends.
func (c *Client) replayTurns() error {
	cursor := 0
	for {
		c.state.WaitForNewTurn(cursor)
		for cursor < c.state.TurnCount() {
			turn := c.state.TurnAt(cursor)
			if err := c.send(wire.NewTurn(turn.Number, turn.Events)); err != nil {
				return err
			}
			cursor++
		}
		if c.state.GameState() == lobby.Lobby {
			return nil
		}
	}
}
