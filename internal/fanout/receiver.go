package fanout

import (
	"context"

	"bombrobots/internal/wire"
)

// RunReceiver reads ClientToServer messages forever, maintaining the
// per-connection local state the spec calls for: whether this
// connection has joined the current lobby cycle, its assigned id, and
// the iteration it last observed.
func RunReceiver(c *Client) {
	joined := false
	var id wire.PlayerId
	currentIteration := c.state.Iteration()

	for {
		msg, err := wire.DecodeClientToServer(c.read)
		if err != nil {
			c.fail("receiver", err)
			return
		}

		if err := c.limiter.Wait(context.Background()); err != nil {
			c.fail("receiver", err)
			return
		}

		if it := c.state.Iteration(); it != currentIteration {
			// Iteration advances once on each Lobby<->Game edge, starting
			// from 0 in Lobby, so it is even in Lobby and odd in Game. A
			// single step from a lobby iteration is the start of the game
			// this connection joined; any other advance means a
			// Game->Lobby restart happened and a new Join is required.
			if !(it == currentIteration+1 && currentIteration%2 == 0) {
				joined = false
			}
			currentIteration = it
		}

		switch msg.Tag {
		case wire.C2SJoin:
			if joined {
				continue
			}
			newID, ok := c.state.AddPlayer(msg.JoinName, c.stream.RemoteAddr())
			if ok {
				id = newID
				joined = true
				// AddPlayer may itself have just bumped iteration (the
				// Lobby->Game edge, when this Join filled the lobby).
				// Re-read it here so the connection starts tracking from
				// the iteration current right after its own Join.
				currentIteration = c.state.Iteration()
			}
		case wire.C2SPlaceBomb, wire.C2SPlaceBlock, wire.C2SMove:
			if !joined {
				continue
			}
			c.state.Moves.Set(id, msg)
		}
	}
}
