package engine

import (
	"sort"

	"bombrobots/internal/wire"
)

// world is the engine's per-game mutable state: everything the turn
// loop reads and writes. Only the engine goroutine touches it, so it
// is not guarded by the lobby's mutex. It is cleared at the start of
// every game.
type world struct {
	positions map[wire.PlayerId]wire.Position
	blocks    map[wire.Position]struct{}
	bombs     map[wire.BombId]wire.Bomb
	nextBomb  wire.BombId
}

func newWorld() *world {
	return &world{
		positions: make(map[wire.PlayerId]wire.Position),
		blocks:    make(map[wire.Position]struct{}),
		bombs:     make(map[wire.BombId]wire.Bomb),
	}
}

func (w *world) reset() {
	w.positions = make(map[wire.PlayerId]wire.Position)
	w.blocks = make(map[wire.Position]struct{})
	w.bombs = make(map[wire.BombId]wire.Bomb)
	w.nextBomb = 0
}

func (w *world) hasBlock(p wire.Position) bool {
	_, ok := w.blocks[p]
	return ok
}

// sortedPlayerIDs returns the world's player ids in ascending order,
// the iteration order the spec mandates for turn-0 spawns and for the
// per-player action phase of every subsequent turn.
func sortedPlayerIDs(players map[wire.PlayerId]wire.Player) []wire.PlayerId {
	ids := make([]wire.PlayerId, 0, len(players))
	for id := range players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
