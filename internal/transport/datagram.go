package transport

import (
	"fmt"
	"net"

	"bombrobots/internal/wire"
)

// DatagramTransport wraps one bound UDP socket. Writes send a single
// datagram carrying the current encoded buffer; each Receive blocks
// for the next datagram, stages it, and returns a ReadBuffer over it
// for the caller to decode from.
type DatagramTransport struct {
	conn   *net.UDPConn
	staged []byte
	peer   *net.UDPAddr
	bound  bool // true once dialed to a fixed peer, as opposed to listening and learning the peer from reads
}

// ListenDatagram opens a UDP socket bound to addr (used by the proxy
// client to receive frontend input).
func ListenDatagram(addr string) (*DatagramTransport, error) {
	a, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, newTransportError(fmt.Sprintf("resolve %s", addr), err)
	}
	conn, err := net.ListenUDP("udp", a)
	if err != nil {
		return nil, newTransportError(fmt.Sprintf("listen udp %s", addr), err)
	}
	return &DatagramTransport{conn: conn}, nil
}

// DialDatagram opens a UDP socket with a fixed peer (used by the proxy
// client to send views to the frontend).
func DialDatagram(addr string) (*DatagramTransport, error) {
	a, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, newTransportError(fmt.Sprintf("resolve %s", addr), err)
	}
	conn, err := net.DialUDP("udp", nil, a)
	if err != nil {
		return nil, newTransportError(fmt.Sprintf("dial udp %s", addr), err)
	}
	return &DatagramTransport{conn: conn, peer: a, bound: true}, nil
}

// Send transmits buf as a single datagram.
func (d *DatagramTransport) Send(buf []byte) error {
	if len(buf) > wire.MaxBufferSize {
		return newTransportError("send", fmt.Errorf("datagram of %d bytes exceeds %d-byte cap", len(buf), wire.MaxBufferSize))
	}
	var err error
	if d.bound {
		_, err = d.conn.Write(buf)
	} else if d.peer != nil {
		_, err = d.conn.WriteToUDP(buf, d.peer)
	} else {
		return newTransportError("send", fmt.Errorf("no known peer"))
	}
	if err != nil {
		return newTransportError("send", err)
	}
	return nil
}

// SendTo transmits buf to addr, recording addr as the peer for any
// future Send call — used the first time the frontend's address
// becomes known from an inbound datagram.
func (d *DatagramTransport) SendTo(buf []byte, addr *net.UDPAddr) error {
	if len(buf) > wire.MaxBufferSize {
		return newTransportError("send", fmt.Errorf("datagram of %d bytes exceeds %d-byte cap", len(buf), wire.MaxBufferSize))
	}
	if _, err := d.conn.WriteToUDP(buf, addr); err != nil {
		return newTransportError(fmt.Sprintf("send to %s", addr), err)
	}
	d.peer = addr
	return nil
}

// Receive blocks for the next datagram and returns a fresh ReadBuffer
// over it along with the sender's address. The staging buffer backing
// the returned ReadBuffer is owned by the caller until the next
// Receive call.
func (d *DatagramTransport) Receive() (*wire.ReadBuffer, *net.UDPAddr, error) {
	buf := make([]byte, wire.MaxBufferSize)
	n, addr, err := d.conn.ReadFromUDP(buf)
	if err != nil {
		return nil, nil, newTransportError("receive", err)
	}
	d.staged = buf[:n]
	return wire.NewReadBuffer(d.staged), addr, nil
}

// LocalAddr reports the socket's bound address, used to discover the
// ephemeral port ListenDatagram(":0") picked.
func (d *DatagramTransport) LocalAddr() *net.UDPAddr {
	return d.conn.LocalAddr().(*net.UDPAddr)
}

// Close is idempotent; a concurrent Close from another goroutine
// unblocks any in-progress Receive with an error.
func (d *DatagramTransport) Close() error {
	return d.conn.Close()
}
