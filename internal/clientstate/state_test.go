package clientstate

import (
	"testing"

	"bombrobots/internal/wire"
)

func TestHelloThenAcceptedPlayerPopulatesLobbyView(t *testing.T) {
	s := New()
	if err := s.Apply(wire.NewHello("arena", 2, 8, 8, 10, 2, 3)); err != nil {
		t.Fatal(err)
	}
	if err := s.Apply(wire.NewAcceptedPlayer(0, wire.Player{Name: "alice", Address: "1.1.1.1:1"})); err != nil {
		t.Fatal(err)
	}

	if s.Phase() != PhaseLobby {
		t.Fatal("expected Lobby phase before GameStarted")
	}
	view := s.View()
	if view.Tag != wire.C2FLobby || view.ServerName != "arena" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if len(view.Players) != 1 || view.Players[0].Name != "alice" {
		t.Fatalf("expected alice in players, got %+v", view.Players)
	}
}

func TestGameStartedSwitchesToGamePhaseAndZeroesScores(t *testing.T) {
	s := New()
	s.Apply(wire.NewHello("arena", 1, 4, 4, 1, 1, 1))
	s.Apply(wire.NewAcceptedPlayer(0, wire.Player{Name: "alice"}))

	s.Apply(wire.NewGameStarted(map[wire.PlayerId]wire.Player{0: {Name: "alice"}}))

	if s.Phase() != PhaseGame {
		t.Fatal("expected Game phase after GameStarted")
	}
	view := s.View()
	if view.Tag != wire.C2FGame {
		t.Fatalf("expected a Game view, got tag %d", view.Tag)
	}
	if view.Scores[0] != 0 {
		t.Fatalf("expected score 0, got %d", view.Scores[0])
	}
}

func TestTurnTracksBombPlacedAndPlayerMoved(t *testing.T) {
	s := New()
	s.Apply(wire.NewHello("arena", 1, 8, 8, 10, 2, 3))
	s.Apply(wire.NewGameStarted(map[wire.PlayerId]wire.Player{0: {Name: "alice"}}))

	events := []wire.Event{
		wire.NewPlayerMoved(0, wire.Position{X: 2, Y: 2}),
		wire.NewBombPlaced(7, wire.Position{X: 2, Y: 2}),
	}
	s.Apply(wire.NewTurn(1, events))

	view := s.View()
	if view.PlayerPositions[0] != (wire.Position{X: 2, Y: 2}) {
		t.Fatalf("expected player moved to (2,2), got %+v", view.PlayerPositions[0])
	}
	if len(view.Bombs) != 1 || view.Bombs[0].Timer != 3 {
		t.Fatalf("expected one fresh-timer bomb, got %+v", view.Bombs)
	}
}

func TestBombExplodedPopulatesExplosionsClearsBlocksAndIncrementsScores(t *testing.T) {
	s := New()
	s.Apply(wire.NewHello("arena", 1, 8, 8, 10, 3, 2))
	s.Apply(wire.NewGameStarted(map[wire.PlayerId]wire.Player{0: {Name: "alice"}}))

	s.Apply(wire.NewTurn(1, []wire.Event{
		wire.NewBlockPlaced(wire.Position{X: 1, Y: 0}),
		wire.NewBombPlaced(0, wire.Position{X: 0, Y: 0}),
	}))

	s.Apply(wire.NewTurn(2, []wire.Event{
		wire.NewBombExploded(0, []wire.PlayerId{0}, []wire.Position{{X: 1, Y: 0}}),
	}))

	view := s.View()
	if len(view.Bombs) != 0 {
		t.Fatalf("expected the exploded bomb to be gone, got %+v", view.Bombs)
	}
	if len(view.Blocks) != 0 {
		t.Fatalf("expected the destroyed block to be gone, got %+v", view.Blocks)
	}
	if view.Scores[0] != 1 {
		t.Fatalf("expected score incremented to 1, got %d", view.Scores[0])
	}
	found := false
	for _, p := range view.Explosions {
		if p == (wire.Position{X: 0, Y: 0}) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the bomb's own cell among explosions, got %+v", view.Explosions)
	}
}

func TestGameEndedReturnsToLobbyAndClearsPlayers(t *testing.T) {
	s := New()
	s.Apply(wire.NewHello("arena", 1, 4, 4, 0, 1, 1))
	s.Apply(wire.NewGameStarted(map[wire.PlayerId]wire.Player{0: {Name: "alice"}}))
	s.Apply(wire.NewGameEnded(map[wire.PlayerId]wire.Score{0: 3}))

	if s.Phase() != PhaseLobby {
		t.Fatal("expected Lobby phase after GameEnded")
	}
	view := s.View()
	if len(view.Players) != 0 {
		t.Fatalf("expected players cleared, got %+v", view.Players)
	}
}
