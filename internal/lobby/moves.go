package lobby

import (
	"sync"

	"bombrobots/internal/wire"
)

// MoveLatches holds one latched client intent per player. Only the
// most recent PlaceBomb/PlaceBlock/Move since the last turn tick is
// honored; Set silently overwrites whatever was latched before. Each
// player has its own lock so the receiver thread for one player never
// blocks on another player's latch, and so the engine can drain one
// player's move while a different player's receiver is mid-write.
//
// Locking order: a caller that also holds State's mutex M may acquire
// an entry's lock; the reverse is never done.
type MoveLatches struct {
	mu      sync.Mutex
	entries map[wire.PlayerId]*moveEntry
}

type moveEntry struct {
	mu   sync.Mutex
	move wire.ClientToServer
	set  bool
}

func newMoveLatches() *MoveLatches {
	return &MoveLatches{entries: make(map[wire.PlayerId]*moveEntry)}
}

func (m *MoveLatches) register(id wire.PlayerId) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = &moveEntry{}
}

func (m *MoveLatches) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[wire.PlayerId]*moveEntry)
}

func (m *MoveLatches) entry(id wire.PlayerId) *moveEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[id]
}

// Set overwrites the latched move for id. A no-op if id is not a
// currently registered player (e.g. a stale message from a prior
// iteration).
func (m *MoveLatches) Set(id wire.PlayerId, move wire.ClientToServer) {
	e := m.entry(id)
	if e == nil {
		return
	}
	e.mu.Lock()
	e.move = move
	e.set = true
	e.mu.Unlock()
}

// TakeAndClear returns the latched move for id, if any, and clears the
// latch so the same move is not replayed next turn.
func (m *MoveLatches) TakeAndClear(id wire.PlayerId) (wire.ClientToServer, bool) {
	e := m.entry(id)
	if e == nil {
		return wire.ClientToServer{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	mv, set := e.move, e.set
	e.set = false
	return mv, set
}
