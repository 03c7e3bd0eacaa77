package clientstate

import (
	"sort"

	"bombrobots/internal/wire"
)

// castExplosionCells walks the same four-ray geometry the server's
// turn engine uses (internal/engine/explosion.go), but against the
// client's own block map and purely to populate the display-only
// explosions set — the server's BombExploded event is still what
// decides who/what was actually destroyed.
func castExplosionCells(blocks map[wire.Position]struct{}, center wire.Position, radius, sizeX, sizeY uint16) []wire.Position {
	cells := make(map[wire.Position]struct{})

	visit := func(p wire.Position) (blocked bool) {
		_, blocked = blocks[p]
		cells[p] = struct{}{}
		return blocked
	}

	if !visit(center) {
		for _, dir := range []wire.Direction{wire.DirUp, wire.DirRight, wire.DirDown, wire.DirLeft} {
			dx, dy := dir.Delta()
			for i := 1; i <= int(radius); i++ {
				x := int(center.X) + dx*i
				y := int(center.Y) + dy*i
				if x < 0 || y < 0 || x >= int(sizeX) || y >= int(sizeY) {
					break
				}
				if visit(wire.Position{X: uint16(x), Y: uint16(y)}) {
					break
				}
			}
		}
	}

	out := make([]wire.Position, 0, len(cells))
	for p := range cells {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
