// Package orchestrator runs the proxy client's two cooperating
// goroutines — a server-listener and a frontend-listener — bridging
// the authoritative TCP stream and the frontend's UDP datagrams
// through one mutex-guarded internal/clientstate.State, per spec.md
// §4.6 and §5's shared-resource policy.
package orchestrator

import (
	"fmt"
	"log"
	"sync"

	"bombrobots/internal/clientstate"
	"bombrobots/internal/transport"
	"bombrobots/internal/wire"
)

// Orchestrator owns the client's two transports and the shared
// materialized state between them. There is no cooperative
// cancellation: the first goroutine to hit a fatal error signals
// shutdown, and Run closes both transports so the other goroutine's
// blocked read/write aborts too.
type Orchestrator struct {
	mu    sync.Mutex
	state *clientstate.State

	server      *transport.StreamTransport
	serverRead  *wire.ReadBuffer
	toServer    *wire.WriteBuffer
	frontendIn  *transport.DatagramTransport
	frontendOut *transport.DatagramTransport
	toFrontend  *wire.WriteBuffer

	playerName string

	done      chan struct{}
	closeOnce sync.Once
	firstErr  error
}

// New builds an Orchestrator bound to an already-connected server
// stream and a pair of already-bound frontend datagram sockets (one
// per direction, per spec.md §4.2).
func New(server *transport.StreamTransport, frontendIn, frontendOut *transport.DatagramTransport, playerName string) *Orchestrator {
	return &Orchestrator{
		state:       clientstate.New(),
		server:      server,
		serverRead:  wire.NewStreamReadBuffer(server.Reader()),
		toServer:    wire.NewWriteBuffer(),
		frontendIn:  frontendIn,
		frontendOut: frontendOut,
		toFrontend:  wire.NewWriteBuffer(),
		playerName:  playerName,
		done:        make(chan struct{}),
	}
}

// Run starts both loops and blocks until either one fails, then tears
// down both transports and returns the first error observed.
func (o *Orchestrator) Run() error {
	go o.serverLoop()
	go o.frontendLoop()

	<-o.done

	o.server.Close()
	o.frontendIn.Close()
	o.frontendOut.Close()

	return o.firstErr
}

// fail records the first fatal error and unblocks Run. Safe to call
// from either goroutine, any number of times.
func (o *Orchestrator) fail(who string, err error) {
	o.closeOnce.Do(func() {
		log.Printf("orchestrator %s: %v", who, err)
		o.firstErr = fmt.Errorf("orchestrator: %s: %w", who, err)
		close(o.done)
	})
}

// serverLoop reads one ServerToClient message at a time, folds it
// into the shared state, and — for every message except
// GameStarted, which is absorbed silently — relays the resulting view
// to the frontend.
func (o *Orchestrator) serverLoop() {
	for {
		msg, err := wire.DecodeServerToClient(o.serverRead)
		if err != nil {
			o.fail("server-listener", err)
			return
		}

		o.mu.Lock()
		if err := o.state.Apply(msg); err != nil {
			o.mu.Unlock()
			o.fail("server-listener", err)
			return
		}
		view := o.state.View()
		o.mu.Unlock()

		if msg.Tag == wire.S2CGameStarted {
			continue
		}

		o.toFrontend.Reset()
		if err := wire.EncodeClientToFrontend(o.toFrontend, view); err != nil {
			o.fail("server-listener", err)
			return
		}
		if err := o.frontendOut.Send(o.toFrontend.Bytes()); err != nil {
			o.fail("server-listener", err)
			return
		}
	}
}

// frontendLoop reads one frontend datagram at a time. A malformed
// datagram, or one with trailing bytes after a complete message, is
// silently discarded — per spec.md §4.1, the received input is simply
// not forwarded. A well-formed datagram is translated according to
// the client's current phase: in Lobby every frontend input becomes a
// Join with the configured player name; in Game it is forwarded as
// the matching PlaceBomb/PlaceBlock/Move.
func (o *Orchestrator) frontendLoop() {
	for {
		rb, _, err := o.frontendIn.Receive()
		if err != nil {
			o.fail("frontend-listener", err)
			return
		}

		input, err := wire.DecodeFrontendToClient(rb)
		if err != nil {
			continue
		}
		if rb.HasMore() {
			continue
		}

		o.mu.Lock()
		phase := o.state.Phase()
		o.mu.Unlock()

		var out wire.ClientToServer
		if phase == clientstate.PhaseLobby {
			out = wire.NewJoin(o.playerName)
		} else {
			switch input.Tag {
			case wire.F2CPlaceBomb:
				out = wire.NewPlaceBomb()
			case wire.F2CPlaceBlock:
				out = wire.NewPlaceBlock()
			case wire.F2CMove:
				out = wire.NewMove(input.Move)
			default:
				continue
			}
		}

		o.toServer.Reset()
		if err := wire.EncodeClientToServer(o.toServer, out); err != nil {
			o.fail("frontend-listener", err)
			return
		}
		if err := o.server.WriteFull(o.toServer.Bytes()); err != nil {
			o.fail("frontend-listener", err)
			return
		}
	}
}
