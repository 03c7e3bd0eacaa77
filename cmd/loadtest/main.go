// Command loadtest drives a scripted fleet of TCP clients through one
// full lobby->game->lobby cycle against a locally running server and
// checks that the turn sequence it observes is monotonic and ends
// with a non-empty GameEnded. Adapted from the teacher's
// cmd/loadtest/main.go, which load-tested its WebSocket server with
// N concurrent connections; this version speaks the bomb-robots wire
// protocol instead of raw WebSocket frames.
package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"bombrobots/internal/wire"
)

func main() {
	addr := "127.0.0.1:4242"
	numClients := 4
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}
	if len(os.Args) > 2 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil {
			numClients = n
		}
	}

	log.Printf("🧪 starting load test: %d clients against %s", numClients, addr)

	var wg sync.WaitGroup
	errs := make(chan error, numClients)

	for i := 0; i < numClients; i++ {
		wg.Add(1)
		go func(clientID int) {
			defer wg.Done()
			if err := runClient(addr, fmt.Sprintf("bot-%d", clientID)); err != nil {
				errs <- fmt.Errorf("client %d: %w", clientID, err)
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	failed := 0
	for err := range errs {
		failed++
		log.Printf("❌ %v", err)
	}
	if failed > 0 {
		log.Fatalf("❌ load test failed: %d/%d clients hit an error", failed, numClients)
	}
	log.Printf("✅ load test completed: %d clients observed a monotonic turn sequence and GameEnded", numClients)
}

// runClient connects, Joins, and reads until GameEnded, asserting
// that every Turn message it observes has a strictly increasing turn
// number and that the game produces a non-empty scores map at the end.
func runClient(addr, name string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	r := wire.NewStreamReadBuffer(conn)
	w := wire.NewWriteBuffer()

	hello, err := wire.DecodeServerToClient(r)
	if err != nil {
		return fmt.Errorf("read hello: %w", err)
	}
	if hello.Tag != wire.S2CHello {
		return fmt.Errorf("expected Hello, got tag %d", hello.Tag)
	}

	w.Reset()
	if err := wire.EncodeClientToServer(w, wire.NewJoin(name)); err != nil {
		return fmt.Errorf("encode join: %w", err)
	}
	if _, err := conn.Write(w.Bytes()); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	lastTurn := int32(-1)
	sawGameStarted := false
	for {
		msg, err := wire.DecodeServerToClient(r)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		switch msg.Tag {
		case wire.S2CGameStarted:
			sawGameStarted = true
		case wire.S2CTurn:
			if !sawGameStarted {
				return fmt.Errorf("received Turn before GameStarted")
			}
			if int32(msg.TurnNumber) <= lastTurn {
				return fmt.Errorf("turn sequence not monotonic: %d after %d", msg.TurnNumber, lastTurn)
			}
			lastTurn = int32(msg.TurnNumber)
			if err := actRandomly(conn, w); err != nil {
				return err
			}
		case wire.S2CGameEnded:
			if len(msg.Scores) == 0 {
				return fmt.Errorf("expected a non-empty scores map in GameEnded")
			}
			return nil
		}
	}
}

// actRandomly sends a harmless Move so the engine has something to
// latch for this client every turn, exercising the move-latch path
// the way a real player would.
func actRandomly(conn net.Conn, w *wire.WriteBuffer) error {
	dir := wire.Direction(time.Now().UnixNano() % 4)
	w.Reset()
	if err := wire.EncodeClientToServer(w, wire.NewMove(dir)); err != nil {
		return fmt.Errorf("encode move: %w", err)
	}
	_, err := conn.Write(w.Bytes())
	return err
}
