// Package transport provides the two network abstractions the wire
// protocol rides on: a reliable TCP byte stream and a bounded UDP
// datagram socket, both with a fail-loud contract — any short
// read/write is a hard error that terminates the owning goroutine.
package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// StreamTransport wraps one TCP connection. Reads block until the
// requested byte count is delivered or the connection terminates;
// writes block until fully flushed. There is no framing beyond what
// the codec provides on top — the stream is a continuous sequence of
// tagged messages.
type StreamTransport struct {
	conn net.Conn
	r    *bufio.Reader
}

// NewStreamTransport wraps an already-accepted or already-dialed TCP
// connection, disabling Nagle's algorithm so small protocol messages
// are not held back waiting to be coalesced.
func NewStreamTransport(conn net.Conn) (*StreamTransport, error) {
	if tc, ok := conn.(*net.TCPConn); ok {
		if err := tc.SetNoDelay(true); err != nil {
			return nil, newTransportError("disable nagle", err)
		}
	}
	return &StreamTransport{conn: conn, r: bufio.NewReader(conn)}, nil
}

// Reader exposes the buffered byte stream for the codec to decode
// messages from directly, one field at a time, with no pre-framing.
func (s *StreamTransport) Reader() io.Reader {
	return s.r
}

// ListenStream opens a TCP listener on addr with SO_REUSEADDR set, so
// a restarted server can rebind immediately after a prior process's
// sockets linger in TIME_WAIT.
func ListenStream(ctx context.Context, addr string) (net.Listener, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, newTransportError(fmt.Sprintf("listen %s", addr), err)
	}
	return ln, nil
}

// ReadFull reads exactly len(buf) bytes, blocking until satisfied.
func (s *StreamTransport) ReadFull(buf []byte) error {
	_, err := io.ReadFull(s.r, buf)
	if err != nil {
		return newTransportError("short read", err)
	}
	return nil
}

// WriteFull writes the entirety of buf, blocking until flushed.
func (s *StreamTransport) WriteFull(buf []byte) error {
	n, err := s.conn.Write(buf)
	if err != nil {
		return newTransportError("write", err)
	}
	if n != len(buf) {
		return newTransportError("write", fmt.Errorf("short write: wrote %d of %d bytes", n, len(buf)))
	}
	return nil
}

// RemoteAddr reports the peer address, used as the Player's Address
// field at Join time.
func (s *StreamTransport) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

// Close is idempotent; a concurrent Close from another goroutine
// unblocks any in-progress ReadFull/WriteFull with an error. This is
// how fanout.Client tears down a connection's sender/receiver pair,
// and how the client's orchestrator tears down its two loops, on
// failure.
func (s *StreamTransport) Close() error {
	return s.conn.Close()
}
