package transport

import (
	"testing"

	"bombrobots/internal/wire"
)

func TestDatagramTransportRoundTrip(t *testing.T) {
	server, err := ListenDatagram("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer server.Close()

	client, err := DialDatagram(server.conn.LocalAddr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	msg := wire.NewFrontendMove(wire.DirRight)
	w := wire.NewWriteBuffer()
	if err := wire.EncodeFrontendToClient(w, msg); err != nil {
		t.Fatal(err)
	}
	if err := client.Send(w.Bytes()); err != nil {
		t.Fatal(err)
	}

	rb, _, err := server.Receive()
	if err != nil {
		t.Fatal(err)
	}
	got, err := wire.DecodeFrontendToClient(rb)
	if err != nil {
		t.Fatal(err)
	}
	if got.Move != wire.DirRight {
		t.Fatalf("got %+v want Move=%v", got, wire.DirRight)
	}
	if rb.HasMore() {
		t.Fatal("unexpected trailing bytes")
	}
}

func TestDatagramTransportOversizeRejected(t *testing.T) {
	client, err := DialDatagram("127.0.0.1:65000")
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	big := make([]byte, wire.MaxBufferSize+1)
	if err := client.Send(big); err == nil {
		t.Fatal("expected oversize datagram to be rejected")
	}
}
