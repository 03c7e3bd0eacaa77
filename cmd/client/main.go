package main

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"

	"bombrobots/internal/config"
	"bombrobots/internal/orchestrator"
	"bombrobots/internal/transport"
)

func main() {
	opts, err := config.ParseClientArgs(os.Args)
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

func run(opts config.ClientOptions) error {
	host, port, err := config.SplitHostPort(opts.ServerAddress)
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}
	// "tcp", rather than "tcp4"/"tcp6", asks the resolver to attempt
	// both address families and dial whichever answers first, per
	// spec.md §6's "both IPv4 and IPv6 resolution must be attempted".
	conn, err := net.Dial("tcp", net.JoinHostPort(host, port))
	if err != nil {
		return fmt.Errorf("client: dial server %s: %w", opts.ServerAddress, err)
	}
	server, err := transport.NewStreamTransport(conn)
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}

	frontendIn, err := transport.ListenDatagram(fmt.Sprintf(":%d", opts.Port))
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}
	guiHost, guiPort, err := config.SplitHostPort(opts.GUIAddress)
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}
	frontendOut, err := transport.DialDatagram(net.JoinHostPort(guiHost, guiPort))
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}

	log.Printf("🔌 bridging server %s <-> frontend %s (local port %d) as %q", opts.ServerAddress, opts.GUIAddress, opts.Port, opts.PlayerName)

	o := orchestrator.New(server, frontendIn, frontendOut, opts.PlayerName)
	return o.Run()
}
