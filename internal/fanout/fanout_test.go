package fanout

import (
	"net"
	"testing"
	"time"

	"bombrobots/internal/lobby"
	"bombrobots/internal/transport"
	"bombrobots/internal/wire"
)

func TestSenderReplaysHelloAcceptedAndGameStarted(t *testing.T) {
	state := lobby.New(lobby.Config{ServerName: "arena", PlayersCount: 1, SizeX: 4, SizeY: 4, GameLength: 0, BombTimer: 2})

	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	st, err := transport.NewStreamTransport(serverConn)
	if err != nil {
		t.Fatal(err)
	}
	client := NewClient(st, state)
	go RunSender(client)

	peerRead := wire.NewStreamReadBuffer(clientConn)

	hello, err := wire.DecodeServerToClient(peerRead)
	if err != nil {
		t.Fatal(err)
	}
	if hello.Tag != wire.S2CHello || hello.ServerName != "arena" {
		t.Fatalf("unexpected hello: %+v", hello)
	}

	if _, ok := state.AddPlayer("alice", "1.1.1.1:9"); !ok {
		t.Fatal("expected join to succeed")
	}

	accepted, err := wire.DecodeServerToClient(peerRead)
	if err != nil {
		t.Fatal(err)
	}
	if accepted.Tag != wire.S2CAcceptedPlayer || accepted.AcceptedPlayer.Name != "alice" {
		t.Fatalf("unexpected accepted-player message: %+v", accepted)
	}

	started, err := wire.DecodeServerToClient(peerRead)
	if err != nil {
		t.Fatal(err)
	}
	if started.Tag != wire.S2CGameStarted || len(started.Players) != 1 {
		t.Fatalf("unexpected game-started message: %+v", started)
	}
}

func TestReceiverJoinsAndLatchesMoves(t *testing.T) {
	state := lobby.New(lobby.Config{PlayersCount: 2, SizeX: 4, SizeY: 4})

	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	st, err := transport.NewStreamTransport(serverConn)
	if err != nil {
		t.Fatal(err)
	}
	client := NewClient(st, state)
	go RunReceiver(client)

	w := wire.NewWriteBuffer()
	if err := wire.EncodeClientToServer(w, wire.NewJoin("bob")); err != nil {
		t.Fatal(err)
	}
	if _, err := clientConn.Write(w.Bytes()); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for state.PlayersSnapshot()[0].Name != "bob" {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for join to register")
		}
		time.Sleep(5 * time.Millisecond)
	}

	w.Reset()
	if err := wire.EncodeClientToServer(w, wire.NewPlaceBomb()); err != nil {
		t.Fatal(err)
	}
	if _, err := clientConn.Write(w.Bytes()); err != nil {
		t.Fatal(err)
	}

	deadline = time.Now().Add(2 * time.Second)
	for {
		mv, ok := state.Moves.TakeAndClear(0)
		if ok {
			if mv.Tag != wire.C2SPlaceBomb {
				t.Fatalf("unexpected latched move: %+v", mv)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for move to latch")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
