package lobby

import (
	"testing"

	"bombrobots/internal/wire"
)

func testConfig() Config {
	return Config{ServerName: "test", PlayersCount: 2, SizeX: 4, SizeY: 4, GameLength: 1}
}

func TestAddPlayerFillsLobbyThenStartsGame(t *testing.T) {
	s := New(testConfig())

	id0, ok := s.AddPlayer("alice", "1.1.1.1:1")
	if !ok || id0 != 0 {
		t.Fatalf("got id=%d ok=%v", id0, ok)
	}
	if s.GameState() != Lobby {
		t.Fatal("expected Lobby after first join")
	}

	id1, ok := s.AddPlayer("bob", "2.2.2.2:2")
	if !ok || id1 != 1 {
		t.Fatalf("got id=%d ok=%v", id1, ok)
	}
	if s.GameState() != Game {
		t.Fatal("expected Game after quota reached")
	}

	scores := s.ScoresSnapshot()
	if scores[id0] != 0 || scores[id1] != 0 {
		t.Fatalf("expected scores reset to zero, got %+v", scores)
	}
}

func TestAddPlayerRejectsOversizeLobby(t *testing.T) {
	s := New(testConfig())
	s.AddPlayer("alice", "a")
	s.AddPlayer("bob", "b")

	_, ok := s.AddPlayer("carol", "c")
	if ok {
		t.Fatal("expected third join to be rejected")
	}
	players := s.PlayersSnapshot()
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
}

func TestAddPlayerRejectedDuringGame(t *testing.T) {
	s := New(testConfig())
	s.AddPlayer("alice", "a")
	s.AddPlayer("bob", "b")

	_, ok := s.AddPlayer("dave", "d")
	if ok {
		t.Fatal("expected join during Game to be rejected")
	}
}

func TestAppendTurnGrowsLogAndBumpsCursor(t *testing.T) {
	s := New(testConfig())
	if s.TurnCount() != 0 {
		t.Fatal("expected empty turn log")
	}
	events := []wire.Event{wire.NewPlayerMoved(0, wire.Position{X: 1, Y: 1})}
	s.AppendTurn(events)
	if s.TurnCount() != 1 {
		t.Fatalf("expected 1 turn, got %d", s.TurnCount())
	}
	turn := s.TurnAt(0)
	if turn.Number != 0 || len(turn.Events) != 1 {
		t.Fatalf("unexpected turn: %+v", turn)
	}
}

func TestEndGameClearsPlayersAndBumpsIteration(t *testing.T) {
	s := New(testConfig())
	s.AddPlayer("alice", "a")
	s.AddPlayer("bob", "b")
	before := s.Iteration()

	s.EndGame()

	if s.GameState() != Lobby {
		t.Fatal("expected Lobby after EndGame")
	}
	if s.Iteration() != before+1 {
		t.Fatalf("expected iteration to advance, got %d -> %d", before, s.Iteration())
	}
	if len(s.PlayersSnapshot()) != 0 {
		t.Fatal("expected players cleared")
	}
	if s.TurnCount() != 0 {
		t.Fatal("expected turn log cleared")
	}
}
