package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"

	"bombrobots/internal/config"
	"bombrobots/internal/engine"
	"bombrobots/internal/fanout"
	"bombrobots/internal/lobby"
	"bombrobots/internal/metrics"
	"bombrobots/internal/transport"
)

func main() {
	opts, err := config.ParseServerArgs(os.Args)
	if errors.Is(err, config.ErrHelpRequested) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR : %v\n", err)
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR : %v\n", err)
		os.Exit(1)
	}
}

func run(opts config.ServerOptions) error {
	state := lobby.New(opts.ToLobbyConfig())
	reg := metrics.New()

	e := engine.New(state).WithMetrics(reg)
	go e.Run()

	go serveMetrics(reg)

	addr := fmt.Sprintf(":%d", opts.Port)
	ln, err := transport.ListenStream(context.Background(), addr)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	defer ln.Close()

	log.Printf("🚀 server %q listening on %s (players=%d grid=%dx%d)", opts.ServerName, addr, opts.PlayersCount, opts.SizeX, opts.SizeY)

	return acceptLoop(ln, state, reg)
}

// acceptLoop owns the listening socket and spawns a sender/receiver
// goroutine pair per accepted connection, sharing no state with
// itself beyond the detached goroutine spawn.
func acceptLoop(ln net.Listener, state *lobby.State, reg *metrics.Registry) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("server: accept: %w", err)
		}

		st, err := transport.NewStreamTransport(conn)
		if err != nil {
			log.Printf("🔌 failed to wrap connection from %s: %v", conn.RemoteAddr(), err)
			conn.Close()
			continue
		}

		client := fanout.NewClient(st, state).WithConnectedGauge(reg.ConnectedClients)
		go fanout.RunSender(client)
		go fanout.RunReceiver(client)
	}
}

func serveMetrics(reg *metrics.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	if err := http.ListenAndServe(":9090", mux); err != nil {
		log.Printf("❌ metrics endpoint stopped: %v", err)
	}
}
