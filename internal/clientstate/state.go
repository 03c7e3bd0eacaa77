// Package clientstate is the proxy client's materialized view of the
// game world. It folds incoming ServerToClient messages into an
// observable snapshot the orchestrator turns into ClientToFrontend
// datagrams, so the rendering frontend can stay stateless.
package clientstate

import (
	"fmt"
	"sort"

	"bombrobots/internal/wire"
)

// Phase mirrors the server's lobby/game state machine on the client
// side.
type Phase uint8

const (
	PhaseLobby Phase = iota
	PhaseGame
)

// bomb is a client-tracked bomb: the same position/timer pair the
// wire protocol carries, except the timer here only ever decrements
// for display — the server is authoritative about when it actually
// explodes.
type bomb struct {
	position wire.Position
	timer    uint16
}

// State is the client's reconstructed world. It is not
// goroutine-safe on its own; internal/orchestrator guards it with a
// single mutex, matching the "shared mutable state via raw
// references becomes one aggregate guarded by one mutex" note in
// SPEC_FULL.md / spec.md §9.
type State struct {
	phase Phase

	serverName      string
	playerCount     uint8
	sizeX           uint16
	sizeY           uint16
	gameLength      uint16
	explosionRadius uint16
	bombTimer       uint16

	turn uint16

	players    map[wire.PlayerId]wire.Player
	positions  map[wire.PlayerId]wire.Position
	blocks     map[wire.Position]struct{}
	bombs      map[wire.BombId]bomb
	explosions map[wire.Position]struct{}
	scores     map[wire.PlayerId]wire.Score
}

// New returns an empty client state in the Lobby phase, before any
// Hello has been received.
func New() *State {
	return &State{
		players:    make(map[wire.PlayerId]wire.Player),
		positions:  make(map[wire.PlayerId]wire.Position),
		blocks:     make(map[wire.Position]struct{}),
		bombs:      make(map[wire.BombId]bomb),
		explosions: make(map[wire.Position]struct{}),
		scores:     make(map[wire.PlayerId]wire.Score),
	}
}

// Phase reports the client's current lobby/game phase.
func (s *State) Phase() Phase {
	return s.phase
}

// Apply folds one ServerToClient message into the client's state.
func (s *State) Apply(m wire.ServerToClient) error {
	switch m.Tag {
	case wire.S2CHello:
		s.applyHello(m)
	case wire.S2CAcceptedPlayer:
		s.applyAcceptedPlayer(m)
	case wire.S2CGameStarted:
		s.applyGameStarted(m)
	case wire.S2CTurn:
		s.applyTurn(m)
	case wire.S2CGameEnded:
		s.applyGameEnded(m)
	default:
		return fmt.Errorf("clientstate: unhandled server-to-client tag %d", m.Tag)
	}
	return nil
}

func (s *State) applyHello(m wire.ServerToClient) {
	s.serverName = m.ServerName
	s.playerCount = m.PlayerCount
	s.sizeX = m.SizeX
	s.sizeY = m.SizeY
	s.gameLength = m.GameLength
	s.explosionRadius = m.ExplosionRadius
	s.bombTimer = m.BombTimer
}

func (s *State) applyAcceptedPlayer(m wire.ServerToClient) {
	s.players[m.AcceptedID] = m.AcceptedPlayer
	s.scores[m.AcceptedID] = 0
}

// applyGameStarted takes the server's players snapshot as ground
// truth, zeroes every score, and clears whatever positions/blocks/
// bombs survived from a previous game.
func (s *State) applyGameStarted(m wire.ServerToClient) {
	s.phase = PhaseGame
	s.turn = 0
	s.players = m.Players
	s.scores = make(map[wire.PlayerId]wire.Score, len(m.Players))
	for id := range m.Players {
		s.scores[id] = 0
	}
	s.positions = make(map[wire.PlayerId]wire.Position)
	s.blocks = make(map[wire.Position]struct{})
	s.bombs = make(map[wire.BombId]bomb)
	s.explosions = make(map[wire.Position]struct{})
}

func (s *State) applyTurn(m wire.ServerToClient) {
	s.turn = m.TurnNumber
	s.explosions = make(map[wire.Position]struct{})
	for id, b := range s.bombs {
		if b.timer > 0 {
			b.timer--
			s.bombs[id] = b
		}
	}

	destroyedBlocks := make(map[wire.Position]struct{})
	destroyedPlayers := make(map[wire.PlayerId]struct{})
	var exploded []wire.BombId

	for _, ev := range m.Events {
		switch ev.Tag {
		case wire.EventBombPlaced:
			s.bombs[ev.BombPlacedID] = bomb{position: ev.BombPlacedPos, timer: s.bombTimer}
		case wire.EventBombExploded:
			if b, ok := s.bombs[ev.BombExplodedID]; ok {
				for _, cell := range castExplosionCells(s.blocks, b.position, s.explosionRadius, s.sizeX, s.sizeY) {
					s.explosions[cell] = struct{}{}
				}
			}
			for _, r := range ev.RobotsDestroyed {
				destroyedPlayers[r] = struct{}{}
			}
			for _, bl := range ev.BlocksDestroyed {
				destroyedBlocks[bl] = struct{}{}
			}
			exploded = append(exploded, ev.BombExplodedID)
		case wire.EventPlayerMoved:
			s.positions[ev.MovedID] = ev.MovedPos
		case wire.EventBlockPlaced:
			s.blocks[ev.BlockPlacedPos] = struct{}{}
		}
	}

	for p := range destroyedBlocks {
		delete(s.blocks, p)
	}
	for id := range destroyedPlayers {
		s.scores[id]++
	}
	for _, id := range exploded {
		delete(s.bombs, id)
	}
}

func (s *State) applyGameEnded(m wire.ServerToClient) {
	s.phase = PhaseLobby
	s.players = make(map[wire.PlayerId]wire.Player)
	s.scores = make(map[wire.PlayerId]wire.Score)
	s.positions = make(map[wire.PlayerId]wire.Position)
	s.blocks = make(map[wire.Position]struct{})
	s.bombs = make(map[wire.BombId]bomb)
	s.explosions = make(map[wire.Position]struct{})
}

// View builds the ClientToFrontend datagram the orchestrator sends
// after every server message except GameStarted.
func (s *State) View() wire.ClientToFrontend {
	if s.phase == PhaseLobby {
		return wire.NewLobbyView(s.serverName, s.playerCount, s.sizeX, s.sizeY, s.gameLength, s.explosionRadius, s.bombTimer, clonePlayers(s.players))
	}

	blocks := make([]wire.Position, 0, len(s.blocks))
	for p := range s.blocks {
		blocks = append(blocks, p)
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Less(blocks[j]) })

	bombs := make([]wire.Bomb, 0, len(s.bombs))
	for _, b := range s.bombs {
		bombs = append(bombs, wire.Bomb{Position: b.position, Timer: b.timer})
	}
	sort.Slice(bombs, func(i, j int) bool { return bombs[i].Position.Less(bombs[j].Position) })

	explosions := make([]wire.Position, 0, len(s.explosions))
	for p := range s.explosions {
		explosions = append(explosions, p)
	}
	sort.Slice(explosions, func(i, j int) bool { return explosions[i].Less(explosions[j]) })

	return wire.NewGameView(
		s.serverName, s.sizeX, s.sizeY, s.gameLength, s.turn,
		clonePlayers(s.players), clonePositions(s.positions),
		blocks, bombs, explosions, cloneScores(s.scores),
	)
}

func clonePlayers(m map[wire.PlayerId]wire.Player) map[wire.PlayerId]wire.Player {
	out := make(map[wire.PlayerId]wire.Player, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func clonePositions(m map[wire.PlayerId]wire.Position) map[wire.PlayerId]wire.Position {
	out := make(map[wire.PlayerId]wire.Position, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneScores(m map[wire.PlayerId]wire.Score) map[wire.PlayerId]wire.Score {
	out := make(map[wire.PlayerId]wire.Score, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
