// Package fanout runs the two goroutines the server spawns per
// accepted TCP connection: a sender that replays the full protocol
// history to its client regardless of when it joined, and a receiver
// that turns incoming messages into lobby/engine state changes.
package fanout

import (
	"fmt"
	"log"
	"sync"

	"golang.org/x/time/rate"

	"bombrobots/internal/lobby"
	"bombrobots/internal/transport"
	"bombrobots/internal/wire"
)

// connectedGauge is the subset of internal/metrics.Registry the
// fanout package updates, kept as an interface so fanout's tests
// don't have to pull in the Prometheus registry.
type connectedGauge interface {
	Inc()
	Dec()
}

// Client is the per-connection handle the sender and receiver
// goroutines share. Any I/O error on either side closes the socket
// and exits both goroutines for this client; the simulation itself is
// unaffected.
type Client struct {
	stream   *transport.StreamTransport
	state    *lobby.State
	read     *wire.ReadBuffer
	write    *wire.WriteBuffer
	limiter  *rate.Limiter
	gauge    connectedGauge
	closeDec sync.Once
}

// NewClient wraps an accepted connection. The receiver is rate
// limited to guard the engine against a misbehaving or hostile client
// flooding it with PlaceBomb/Move messages.
func NewClient(stream *transport.StreamTransport, state *lobby.State) *Client {
	return &Client{
		stream:  stream,
		state:   state,
		read:    wire.NewStreamReadBuffer(stream.Reader()),
		write:   wire.NewWriteBuffer(),
		limiter: rate.NewLimiter(rate.Limit(50), 100),
	}
}

// WithConnectedGauge attaches a gauge incremented for the lifetime of
// this connection — used by cmd/server to feed
// internal/metrics.Registry.ConnectedClients.
func (c *Client) WithConnectedGauge(g connectedGauge) *Client {
	c.gauge = g
	g.Inc()
	return c
}

func (c *Client) send(msg wire.ServerToClient) error {
	c.write.Reset()
	if err := wire.EncodeServerToClient(c.write, msg); err != nil {
		return fmt.Errorf("fanout: encode: %w", err)
	}
	return c.stream.WriteFull(c.write.Bytes())
}

// Close closes the underlying connection, unblocking any in-progress
// read or write on either goroutine. Idempotent: the connected-clients
// gauge is decremented at most once regardless of how many times (or
// from how many goroutines) Close is called.
func (c *Client) Close() error {
	if c.gauge != nil {
		c.closeDec.Do(c.gauge.Dec)
	}
	return c.stream.Close()
}

func (c *Client) fail(who string, err error) {
	log.Printf("client %s: %v", who, err)
	c.Close()
}
