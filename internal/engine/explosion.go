package engine

import (
	"sort"

	"bombrobots/internal/wire"
)

// castExplosion computes everything one bomb at center destroys,
// casting four independent rays out from its own cell. The center
// cell is evaluated exactly once regardless of how many rays would
// otherwise re-visit it; each ray then walks outward up to radius
// cells, stopping at the grid edge or at the first block it meets
// (the block itself is destroyed, cells beyond it are untouched).
func castExplosion(w *world, players map[wire.PlayerId]wire.Position, center wire.Position, radius, sizeX, sizeY uint16) (robots []wire.PlayerId, blocks []wire.Position) {
	robotSet := make(map[wire.PlayerId]struct{})
	blockSet := make(map[wire.Position]struct{})

	visit := func(p wire.Position) (blocked bool) {
		for id, pos := range players {
			if pos == p {
				robotSet[id] = struct{}{}
			}
		}
		if w.hasBlock(p) {
			blockSet[p] = struct{}{}
			return true
		}
		return false
	}

	centerBlocked := visit(center)

	if !centerBlocked {
		for _, dir := range []wire.Direction{wire.DirUp, wire.DirRight, wire.DirDown, wire.DirLeft} {
			dx, dy := dir.Delta()
			for i := 1; i <= int(radius); i++ {
				x := int(center.X) + dx*i
				y := int(center.Y) + dy*i
				if x < 0 || y < 0 || x >= int(sizeX) || y >= int(sizeY) {
					break
				}
				cell := wire.Position{X: uint16(x), Y: uint16(y)}
				if visit(cell) {
					break
				}
			}
		}
	}

	robots = make([]wire.PlayerId, 0, len(robotSet))
	for id := range robotSet {
		robots = append(robots, id)
	}
	sort.Slice(robots, func(i, j int) bool { return robots[i] < robots[j] })

	blocks = make([]wire.Position, 0, len(blockSet))
	for p := range blockSet {
		blocks = append(blocks, p)
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Less(blocks[j]) })

	return robots, blocks
}
