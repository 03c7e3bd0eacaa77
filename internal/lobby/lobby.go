// Package lobby holds the server's single authoritative piece of
// shared state: the lobby/game state machine, the player registry,
// and the append-only turn log. Everything is guarded by one mutex
// and three condition variables, one per monotonically growing log a
// sender thread might be waiting on.
package lobby

import (
	"sync"

	"bombrobots/internal/wire"
)

// GameState is the server's top-level phase.
type GameState uint8

const (
	Lobby GameState = iota
	Game
)

// Config carries the options a single run of the server is launched
// with. It never changes after startup.
type Config struct {
	ServerName      string
	PlayersCount    uint8
	SizeX           uint16
	SizeY           uint16
	GameLength      uint16
	ExplosionRadius uint16
	BombTimer       uint16
	InitialBlocks   uint16
	TurnDurationMS  uint64
	Seed            uint32
}

// Turn is one immutable, already-published row of the turn log.
type Turn struct {
	Number uint16
	Events []wire.Event
}

// State is the mutex-and-condvar-guarded aggregate described in the
// concurrency model: one lock for all mutable game state, with
// separate per-player move latches living outside it (see moves.go)
// to keep engine-thread contention low.
type State struct {
	cfg Config

	mu sync.Mutex

	// newPlayers is signaled whenever a player is registered in Lobby.
	newPlayers *sync.Cond
	// gameStart is signaled exactly once per Lobby->Game transition.
	gameStart *sync.Cond
	// newTurn is signaled whenever a turn is appended, and once more
	// at Game->Lobby so blocked senders observe the state change.
	newTurn *sync.Cond

	gameState GameState
	iteration uint64

	players      map[wire.PlayerId]wire.Player
	nextPlayerID wire.PlayerId

	scores map[wire.PlayerId]wire.Score

	turns       []Turn
	currentTurn uint16

	// Moves holds the per-player latched intent, each under its own
	// lock so the engine can read/clear one player's move without
	// contending with the receiver thread of another.
	Moves *MoveLatches
}

// New builds a State starting in Lobby.
func New(cfg Config) *State {
	s := &State{
		cfg:       cfg,
		gameState: Lobby,
		players:   make(map[wire.PlayerId]wire.Player),
		scores:    make(map[wire.PlayerId]wire.Score),
		Moves:     newMoveLatches(),
	}
	s.newPlayers = sync.NewCond(&s.mu)
	s.gameStart = sync.NewCond(&s.mu)
	s.newTurn = sync.NewCond(&s.mu)
	return s
}

// Config returns the immutable launch options.
func (s *State) Config() Config {
	return s.cfg
}

// AddPlayer is the lobby's primary write operation. It returns the
// assigned id and true on success; false if the lobby is full or the
// game is already running (the Join is silently dropped per §4.4).
func (s *State) AddPlayer(name, address string) (wire.PlayerId, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameState == Game {
		return 0, false
	}
	if len(s.players) >= int(s.cfg.PlayersCount) {
		return 0, false
	}

	id := s.nextPlayerID
	s.nextPlayerID++
	s.players[id] = wire.Player{Name: name, Address: address}
	s.Moves.register(id)
	s.newPlayers.Broadcast()

	if len(s.players) == int(s.cfg.PlayersCount) {
		s.gameState = Game
		for pid := range s.players {
			s.scores[pid] = 0
		}
		// The previous game's turn log is only safe to drop once this
		// new game starts, not the instant the previous one ends: a
		// slow sender may still be mid-replayTurns when EndGame flips
		// the state back to Lobby, and it must still observe every
		// turn that was ever appended. Clearing here, instead of in
		// EndGame, guarantees every sender has a full lobby cycle
		// (players trickling back in) to finish draining turns[] from
		// the game that just ended before it is reused for turn 0 of
		// this one.
		s.turns = nil
		s.currentTurn = 0
		s.iteration++
		s.gameStart.Broadcast()
	}

	return id, true
}

// Iteration reports the current lobby/game cycle counter.
func (s *State) Iteration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.iteration
}

// GameState reports the current phase.
func (s *State) GameState() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameState
}

// PlayersSnapshot returns a copy of the registered players, safe to
// read without holding the lock afterward.
func (s *State) PlayersSnapshot() map[wire.PlayerId]wire.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[wire.PlayerId]wire.Player, len(s.players))
	for id, p := range s.players {
		out[id] = p
	}
	return out
}

// ScoresSnapshot returns a copy of the current scores.
func (s *State) ScoresSnapshot() map[wire.PlayerId]wire.Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[wire.PlayerId]wire.Score, len(s.scores))
	for id, sc := range s.scores {
		out[id] = sc
	}
	return out
}

// AppendTurn publishes one turn to the log and wakes every sender
// thread blocked on new_turn. Turns are immutable once appended.
func (s *State) AppendTurn(events []wire.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, Turn{Number: s.currentTurn, Events: events})
	s.currentTurn++
	s.newTurn.Broadcast()
}

// TurnCount reports how many turns have been published so far.
func (s *State) TurnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// TurnAt returns the turn at index i. The caller must have already
// observed TurnCount() > i.
func (s *State) TurnAt(i int) Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turns[i]
}

// WaitForNewPlayerOrGameStart blocks until either a new player has
// registered (cursor < len(players)) or the game has started,
// whichever the sender thread is waiting for while still in Lobby.
func (s *State) WaitForNewPlayerOrGameStart(cursor int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.gameState == Lobby && len(s.players) <= cursor {
		s.newPlayers.Wait()
	}
}

// WaitForNewTurn blocks until turns has grown past cursor, or the
// game has ended — whichever comes first.
func (s *State) WaitForNewTurn(cursor int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.gameState == Game && len(s.turns) <= cursor {
		s.newTurn.Wait()
	}
}

// WaitGameStart blocks until the lobby fills and the game starts.
// This is the turn engine's entry point into a new game.
func (s *State) WaitGameStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.gameState != Game {
		s.gameStart.Wait()
	}
}

// SetScore sets a player's score. The engine itself uses
// IncrementScore when a robot is destroyed and re-spawned.
func (s *State) SetScore(id wire.PlayerId, score wire.Score) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[id] = score
}

// IncrementScore adds one to a player's score.
func (s *State) IncrementScore(id wire.PlayerId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[id]++
}

// EndGame transitions Game->Lobby: clears players, bumps the
// iteration counter, and wakes sender threads blocked on new_turn so
// they notice the state change and move on to send GameEnded. The
// turn log itself is deliberately left alone — a sender can still be
// mid-replayTurns, and turns[] is not reset until the next game
// actually starts (see AddPlayer), so every sender keeps access to
// the complete log of the game that just ended until it has had a
// chance to drain it.
func (s *State) EndGame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gameState = Lobby
	s.iteration++
	s.players = make(map[wire.PlayerId]wire.Player)
	s.nextPlayerID = 0
	s.Moves.clear()
	s.newTurn.Broadcast()
}
