package engine

import (
	"testing"

	"bombrobots/internal/lobby"
	"bombrobots/internal/wire"
)

func newTestEngine(cfg lobby.Config) (*Engine, *lobby.State) {
	state := lobby.New(cfg)
	return New(state), state
}

func TestSinglePlayerTrivialGame(t *testing.T) {
	cfg := lobby.Config{
		PlayersCount:    1,
		SizeX:           2,
		SizeY:           2,
		InitialBlocks:   0,
		GameLength:      0,
		BombTimer:       1,
		ExplosionRadius: 0,
		Seed:            0,
	}
	e, state := newTestEngine(cfg)
	id, ok := state.AddPlayer("alice", "1.2.3.4:5")
	if !ok || id != 0 {
		t.Fatalf("join failed: id=%d ok=%v", id, ok)
	}

	e.playGame()

	if state.GameState() != lobby.Lobby {
		t.Fatal("expected a return to Lobby once the single turn (game_length=0) completes")
	}
	if state.TurnCount() != 0 {
		t.Fatalf("expected turn log cleared by EndGame, got %d", state.TurnCount())
	}
}

func TestTurnZeroSpawnsEveryPlayerOnce(t *testing.T) {
	cfg := lobby.Config{PlayersCount: 2, SizeX: 4, SizeY: 4, GameLength: 0, BombTimer: 3, ExplosionRadius: 1}
	e, state := newTestEngine(cfg)
	state.AddPlayer("alice", "a")
	state.AddPlayer("bob", "b")

	players := state.PlayersSnapshot()
	events := e.turnZeroEvents(cfg, players)

	moved := 0
	for _, ev := range events {
		if ev.Tag == wire.EventPlayerMoved {
			moved++
		}
	}
	if moved != 2 {
		t.Fatalf("expected 2 PlayerMoved events, got %d", moved)
	}
}

func TestBlockStopsExplosionRay(t *testing.T) {
	e, _ := newTestEngine(lobby.Config{SizeX: 10, SizeY: 10})
	e.world.reset()
	e.world.blocks[wire.Position{X: 3, Y: 0}] = struct{}{}

	robots, blocks := castExplosion(e.world, map[wire.PlayerId]wire.Position{}, wire.Position{X: 0, Y: 0}, 5, 10, 10)
	if len(robots) != 0 {
		t.Fatalf("expected no robots destroyed, got %v", robots)
	}
	if len(blocks) != 1 || blocks[0] != (wire.Position{X: 3, Y: 0}) {
		t.Fatalf("expected blocks_destroyed=[(3,0)], got %v", blocks)
	}
}

func TestMovementBlockedByBlock(t *testing.T) {
	cfg := lobby.Config{PlayersCount: 1, SizeX: 4, SizeY: 4, GameLength: 1, BombTimer: 3}
	e, state := newTestEngine(cfg)
	state.AddPlayer("alice", "a")
	players := state.PlayersSnapshot()

	e.world.reset()
	e.world.positions[0] = wire.Position{X: 0, Y: 0}
	e.world.blocks[wire.Position{X: 1, Y: 0}] = struct{}{}
	state.Moves.Set(0, wire.NewMove(wire.DirRight))

	events := e.nextTurnEvents(cfg, players)
	for _, ev := range events {
		if ev.Tag == wire.EventPlayerMoved && ev.MovedID == 0 {
			t.Fatalf("expected no PlayerMoved event, got %+v", ev)
		}
	}
	if e.world.positions[0] != (wire.Position{X: 0, Y: 0}) {
		t.Fatalf("expected position unchanged, got %+v", e.world.positions[0])
	}
}

func TestRobotRespawnAfterDestructionIncrementsScore(t *testing.T) {
	cfg := lobby.Config{PlayersCount: 1, SizeX: 4, SizeY: 4, GameLength: 1, BombTimer: 1, ExplosionRadius: 0, Seed: 7}
	e, state := newTestEngine(cfg)
	state.AddPlayer("alice", "a")
	players := state.PlayersSnapshot()

	e.world.reset()
	e.world.positions[0] = wire.Position{X: 1, Y: 1}
	e.world.bombs[0] = wire.Bomb{Position: wire.Position{X: 1, Y: 1}, Timer: 1}

	events := e.nextTurnEvents(cfg, players)

	var exploded, moved bool
	for _, ev := range events {
		if ev.Tag == wire.EventBombExploded {
			exploded = true
			found := false
			for _, r := range ev.RobotsDestroyed {
				if r == 0 {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected player 0 in robots_destroyed, got %+v", ev)
			}
		}
		if ev.Tag == wire.EventPlayerMoved && ev.MovedID == 0 {
			moved = true
		}
	}
	if !exploded || !moved {
		t.Fatalf("expected both BombExploded and PlayerMoved events, got %+v", events)
	}
	scores := state.ScoresSnapshot()
	if scores[0] != 1 {
		t.Fatalf("expected score incremented to 1, got %d", scores[0])
	}
}

func TestChainedDestructionReportsPlayerInBothBombs(t *testing.T) {
	e, _ := newTestEngine(lobby.Config{SizeX: 10, SizeY: 10})
	e.world.reset()
	positions := map[wire.PlayerId]wire.Position{0: {X: 2, Y: 0}}

	robotsA, _ := castExplosion(e.world, positions, wire.Position{X: 0, Y: 0}, 3, 10, 10)
	robotsB, _ := castExplosion(e.world, positions, wire.Position{X: 4, Y: 0}, 3, 10, 10)

	if len(robotsA) != 1 || robotsA[0] != 0 {
		t.Fatalf("expected bomb A to destroy player 0, got %v", robotsA)
	}
	if len(robotsB) != 1 || robotsB[0] != 0 {
		t.Fatalf("expected bomb B to also destroy player 0, got %v", robotsB)
	}
}
