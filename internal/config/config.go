// Package config parses the command-line options for both binaries
// using github.com/urfave/cli/v2, the long/short-flag CLI library
// carried into this module's dependency stack from the retrieval
// pack's manifests (see SPEC_FULL.md's DOMAIN STACK). Each binary gets
// its own typed option struct, matching the teacher's pattern of a
// dedicated internal/config package holding config structs — only the
// loader changes, from env-var/JSON to CLI flags.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"bombrobots/internal/lobby"
)

// ErrHelpRequested is returned by ParseServerArgs/ParseClientArgs when
// the user passed --help: cli.App prints the usage text itself and
// skips Action, so the caller needs an explicit signal to exit 0
// instead of treating the zero-value options as a parse failure.
var ErrHelpRequested = fmt.Errorf("help requested")

// ServerOptions is the parsed form of every flag in spec.md §6's
// server CLI table.
type ServerOptions struct {
	BombTimer       uint16
	PlayersCount    uint8
	TurnDurationMS  uint64
	ExplosionRadius uint16
	InitialBlocks   uint16
	GameLength      uint16
	ServerName      string
	Port            uint16
	Seed            uint32
	SizeX           uint16
	SizeY           uint16
}

// ToLobbyConfig adapts the parsed flags into the lobby package's
// Config, the shape the authoritative state and the turn engine
// actually consume.
func (o ServerOptions) ToLobbyConfig() lobby.Config {
	return lobby.Config{
		ServerName:      o.ServerName,
		PlayersCount:    o.PlayersCount,
		SizeX:           o.SizeX,
		SizeY:           o.SizeY,
		GameLength:      o.GameLength,
		ExplosionRadius: o.ExplosionRadius,
		BombTimer:       o.BombTimer,
		InitialBlocks:   o.InitialBlocks,
		TurnDurationMS:  o.TurnDurationMS,
		Seed:            o.Seed,
	}
}

// ClientOptions is the parsed form of spec.md §6's client CLI table.
type ClientOptions struct {
	GUIAddress    string
	ServerAddress string
	PlayerName    string
	Port          int
}

// ParseServerArgs builds and runs a urfave/cli App exposing the
// server's flags, returning the parsed options. args is the raw
// os.Args slice (args[0] is the program name, matching cli.App.Run's
// convention).
func ParseServerArgs(args []string) (ServerOptions, error) {
	var opts ServerOptions
	seedSet := false
	actionRan := false

	app := &cli.App{
		Name:  "bombrobots-server",
		Usage: "host one lobby-to-game-to-lobby cycle of a bomb-placing-robots match",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "bomb-timer", Aliases: []string{"b"}, Required: true, Usage: "turns before a placed bomb explodes"},
			&cli.Uint64Flag{Name: "players-count", Aliases: []string{"c"}, Required: true, Usage: "players required before the lobby starts a game"},
			&cli.Uint64Flag{Name: "turn-duration", Aliases: []string{"d"}, Required: true, Usage: "milliseconds between turns"},
			&cli.Uint64Flag{Name: "explosion-radius", Aliases: []string{"e"}, Required: true, Usage: "cells a bomb's blast reaches in each direction"},
			&cli.Uint64Flag{Name: "initial-blocks", Aliases: []string{"k"}, Required: true, Usage: "blocks placed at world generation"},
			&cli.Uint64Flag{Name: "game-length", Aliases: []string{"l"}, Required: true, Usage: "number of turns after turn 0"},
			&cli.StringFlag{Name: "server-name", Aliases: []string{"n"}, Required: true, Usage: "name advertised in Hello"},
			&cli.Uint64Flag{Name: "port", Aliases: []string{"p"}, Required: true, Usage: "TCP port to listen on"},
			&cli.Uint64Flag{Name: "seed", Aliases: []string{"s"}, Usage: "world-generation seed (default: derived from system time)"},
			&cli.Uint64Flag{Name: "size-x", Aliases: []string{"x"}, Required: true, Usage: "grid width"},
			&cli.Uint64Flag{Name: "size-y", Aliases: []string{"y"}, Required: true, Usage: "grid height"},
		},
		Action: func(c *cli.Context) error {
			if err := requireRange("bomb-timer", c.Uint64("bomb-timer"), 0, 65535); err != nil {
				return err
			}
			if err := requireRange("players-count", c.Uint64("players-count"), 1, 255); err != nil {
				return err
			}
			if err := requireRange("explosion-radius", c.Uint64("explosion-radius"), 0, 65535); err != nil {
				return err
			}
			if err := requireRange("initial-blocks", c.Uint64("initial-blocks"), 0, 65535); err != nil {
				return err
			}
			if err := requireRange("game-length", c.Uint64("game-length"), 1, 65535); err != nil {
				return err
			}
			if err := requireRange("port", c.Uint64("port"), 0, 65535); err != nil {
				return err
			}
			if err := requireRange("size-x", c.Uint64("size-x"), 1, 65535); err != nil {
				return err
			}
			if err := requireRange("size-y", c.Uint64("size-y"), 1, 65535); err != nil {
				return err
			}
			if len(c.String("server-name")) > 255 {
				return fmt.Errorf("server-name must be at most 255 bytes")
			}

			opts = ServerOptions{
				BombTimer:       uint16(c.Uint64("bomb-timer")),
				PlayersCount:    uint8(c.Uint64("players-count")),
				TurnDurationMS:  c.Uint64("turn-duration"),
				ExplosionRadius: uint16(c.Uint64("explosion-radius")),
				InitialBlocks:   uint16(c.Uint64("initial-blocks")),
				GameLength:      uint16(c.Uint64("game-length")),
				ServerName:      c.String("server-name"),
				Port:            uint16(c.Uint64("port")),
				SizeX:           uint16(c.Uint64("size-x")),
				SizeY:           uint16(c.Uint64("size-y")),
			}
			seedSet = c.IsSet("seed")
			if seedSet {
				opts.Seed = uint32(c.Uint64("seed"))
			}
			actionRan = true
			return nil
		},
	}

	if err := app.Run(args); err != nil {
		return ServerOptions{}, err
	}
	if !actionRan {
		return ServerOptions{}, ErrHelpRequested
	}
	if !seedSet {
		opts.Seed = uint32(time.Now().UnixNano())
	}
	return opts, nil
}

// ParseClientArgs builds and runs a urfave/cli App exposing the proxy
// client's flags.
func ParseClientArgs(args []string) (ClientOptions, error) {
	var opts ClientOptions
	actionRan := false

	app := &cli.App{
		Name:  "bombrobots-client",
		Usage: "bridge an authoritative game server and a local rendering frontend",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "gui-address", Aliases: []string{"d"}, Required: true, Usage: "host:port the frontend listens on for Game/Lobby datagrams"},
			&cli.StringFlag{Name: "server-address", Aliases: []string{"s"}, Required: true, Usage: "host:port of the authoritative game server"},
			&cli.StringFlag{Name: "player-name", Aliases: []string{"n"}, Required: true, Usage: "name sent with every Join"},
			&cli.Uint64Flag{Name: "port", Aliases: []string{"p"}, Required: true, Usage: "local UDP port the frontend connects to"},
		},
		Action: func(c *cli.Context) error {
			if err := requireRange("port", c.Uint64("port"), 0, 65535); err != nil {
				return err
			}
			opts = ClientOptions{
				GUIAddress:    c.String("gui-address"),
				ServerAddress: c.String("server-address"),
				PlayerName:    c.String("player-name"),
				Port:          int(c.Uint64("port")),
			}
			actionRan = true
			return nil
		},
	}

	if err := app.Run(args); err != nil {
		return ClientOptions{}, err
	}
	if !actionRan {
		return ClientOptions{}, ErrHelpRequested
	}
	return opts, nil
}

func requireRange(name string, v, lo, hi uint64) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s: %d is out of range [%d, %d]", name, v, lo, hi)
	}
	return nil
}

// SplitHostPort splits a HOST:PORT address on the *last* colon, per
// spec.md §6 — the convention that accommodates bracket-less input
// without pretending to parse IPv6 zone/bracket syntax.
func SplitHostPort(addr string) (host, port string, err error) {
	i := strings.LastIndex(addr, ":")
	if i < 0 {
		return "", "", fmt.Errorf("config: %q has no ':' separating host and port", addr)
	}
	host, port = addr[:i], addr[i+1:]
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return "", "", fmt.Errorf("config: %q has a non-numeric port: %w", addr, err)
	}
	return host, port, nil
}
