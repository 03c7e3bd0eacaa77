// Package engine drives the single simulation thread: it runs one
// game at a time, turning the lobby's players map and each player's
// latched intent into a deterministic sequence of Turn events.
package engine

import (
	"log"
	"sort"
	"time"

	"bombrobots/internal/lobby"
	"bombrobots/internal/wire"
)

// metricsSink is the subset of internal/metrics.Registry the engine
// updates; kept as an interface so engine tests don't need to pull in
// the metrics package or its Prometheus registry.
type metricsSink interface {
	ObserveEvents(events []wire.Event)
	ObserveGameEnded()
}

// Engine owns the per-game world and draws from a seeded generator so
// two servers given the same options and the same sequence of player
// actions produce byte-identical turn logs.
type Engine struct {
	state   *lobby.State
	rng     *lcg
	world   *world
	metrics metricsSink
}

// New builds an Engine bound to state. state.Config().Seed seeds the
// generator that drives every random draw this engine makes.
func New(state *lobby.State) *Engine {
	cfg := state.Config()
	return &Engine{
		state: state,
		rng:   newLCG(cfg.Seed),
		world: newWorld(),
	}
}

// WithMetrics attaches a metrics sink the engine reports turn and
// game-end events to. Returns the Engine for chaining at construction
// time in cmd/server.
func (e *Engine) WithMetrics(m metricsSink) *Engine {
	e.metrics = m
	return e
}

// Run blocks forever, playing one game per lobby cycle. It is meant
// to be the body of the server's single turn-engine goroutine.
func (e *Engine) Run() {
	for {
		e.state.WaitGameStart()
		e.playGame()
	}
}

func (e *Engine) playGame() {
	cfg := e.state.Config()
	e.world.reset()

	players := e.state.PlayersSnapshot()
	events := e.turnZeroEvents(cfg, players)

	for turn := uint16(0); ; turn++ {
		e.state.AppendTurn(events)
		if e.metrics != nil {
			e.metrics.ObserveEvents(events)
		}

		if turn == cfg.GameLength {
			break
		}
		time.Sleep(time.Duration(cfg.TurnDurationMS) * time.Millisecond)

		events = e.nextTurnEvents(cfg, players)
	}

	e.state.EndGame()
	if e.metrics != nil {
		e.metrics.ObserveGameEnded()
	}
	log.Printf("game ended after %d turns", cfg.GameLength+1)
}

// turnZeroEvents builds the deterministic startup events: a random
// spawn per player in ascending id order, then initial_blocks random
// block placements, discarding any that collide with an already
// placed block.
func (e *Engine) turnZeroEvents(cfg lobby.Config, players map[wire.PlayerId]wire.Player) []wire.Event {
	var events []wire.Event

	for _, id := range sortedPlayerIDs(players) {
		pos := e.randomPosition(cfg)
		e.world.positions[id] = pos
		events = append(events, wire.NewPlayerMoved(id, pos))
	}

	for i := uint16(0); i < cfg.InitialBlocks; i++ {
		pos := e.randomPosition(cfg)
		if e.world.hasBlock(pos) {
			continue
		}
		e.world.blocks[pos] = struct{}{}
		events = append(events, wire.NewBlockPlaced(pos))
	}

	return events
}

func (e *Engine) randomPosition(cfg lobby.Config) wire.Position {
	return wire.Position{X: e.rng.intn(cfg.SizeX), Y: e.rng.intn(cfg.SizeY)}
}

// nextTurnEvents computes the events for the turn about to be
// published, in the exact order the spec requires: bomb tick and
// explosions first, then one action per player in ascending id order.
func (e *Engine) nextTurnEvents(cfg lobby.Config, players map[wire.PlayerId]wire.Player) []wire.Event {
	var events []wire.Event

	destroyedRobots := make(map[wire.PlayerId]struct{})

	for id, b := range e.world.bombs {
		b.Timer--
		e.world.bombs[id] = b
	}

	var exploding []wire.BombId
	for id, b := range e.world.bombs {
		if b.Timer == 0 {
			exploding = append(exploding, id)
		}
	}
	sort.Slice(exploding, func(i, j int) bool { return exploding[i] < exploding[j] })

	blocksToDestroy := make(map[wire.Position]struct{})
	for _, id := range exploding {
		b := e.world.bombs[id]
		robots, blocks := castExplosion(e.world, e.world.positions, b.Position, cfg.ExplosionRadius, cfg.SizeX, cfg.SizeY)
		events = append(events, wire.NewBombExploded(id, robots, blocks))
		for _, r := range robots {
			destroyedRobots[r] = struct{}{}
		}
		for _, bl := range blocks {
			blocksToDestroy[bl] = struct{}{}
		}
	}
	for p := range blocksToDestroy {
		delete(e.world.blocks, p)
	}
	for _, id := range exploding {
		delete(e.world.bombs, id)
	}

	for _, id := range sortedPlayerIDs(players) {
		if _, destroyed := destroyedRobots[id]; destroyed {
			pos := e.randomPosition(cfg)
			e.world.positions[id] = pos
			events = append(events, wire.NewPlayerMoved(id, pos))
			e.state.IncrementScore(id)
			continue
		}

		move, has := e.state.Moves.TakeAndClear(id)
		if !has {
			continue
		}
		switch move.Tag {
		case wire.C2SPlaceBomb:
			bombID := e.world.nextBomb
			e.world.nextBomb++
			pos := e.world.positions[id]
			e.world.bombs[bombID] = wire.Bomb{Position: pos, Timer: cfg.BombTimer}
			events = append(events, wire.NewBombPlaced(bombID, pos))
		case wire.C2SPlaceBlock:
			pos := e.world.positions[id]
			if !e.world.hasBlock(pos) {
				e.world.blocks[pos] = struct{}{}
				events = append(events, wire.NewBlockPlaced(pos))
			}
		case wire.C2SMove:
			cur := e.world.positions[id]
			dx, dy := move.Move.Delta()
			x, y := int(cur.X)+dx, int(cur.Y)+dy
			if x < 0 || y < 0 || x >= int(cfg.SizeX) || y >= int(cfg.SizeY) {
				continue
			}
			candidate := wire.Position{X: uint16(x), Y: uint16(y)}
			if e.world.hasBlock(candidate) {
				continue
			}
			e.world.positions[id] = candidate
			events = append(events, wire.NewPlayerMoved(id, candidate))
		}
	}

	return events
}

