package transport

import (
	"net"
	"testing"

	"bombrobots/internal/wire"
)

func TestStreamTransportRoundTrip(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	st, err := NewStreamTransport(server)
	if err != nil {
		t.Fatal(err)
	}
	ct, err := NewStreamTransport(client)
	if err != nil {
		t.Fatal(err)
	}

	msg := wire.NewJoin("robot-1")
	done := make(chan error, 1)
	go func() {
		w := wire.NewWriteBuffer()
		if err := wire.EncodeClientToServer(w, msg); err != nil {
			done <- err
			return
		}
		done <- ct.WriteFull(w.Bytes())
	}()

	rb := wire.NewStreamReadBuffer(st.Reader())
	got, err := wire.DecodeClientToServer(rb)
	if err != nil {
		t.Fatal(err)
	}
	if got.JoinName != msg.JoinName {
		t.Fatalf("got %+v want %+v", got, msg)
	}
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestStreamTransportCloseUnblocksRead(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	st, err := NewStreamTransport(server)
	if err != nil {
		t.Fatal(err)
	}

	errCh := make(chan error, 1)
	go func() {
		buf := make([]byte, 4)
		errCh <- st.ReadFull(buf)
	}()

	if err := st.Close(); err != nil {
		t.Fatal(err)
	}
	if err := <-errCh; err == nil {
		t.Fatal("expected read to fail after close")
	}
}
