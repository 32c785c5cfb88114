// Package cmd wires up the CLI flags and dispatches to the player client.
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"vlcrc/config"
	"vlcrc/util"
	"vlcrc/vlc"
)

// version is overridable at link time:
//
//	go build -ldflags "-X vlcrc/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args, connects to the player and runs one command.
func Execute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("vlcrc", flag.ContinueOnError)

	// ── connection ───────────────────────────────────────────────
	fs.StringP("host", "H", config.DefaultHost, "Control interface host")
	fs.IntP("port", "p", config.DefaultPort, "Control interface port")
	fs.StringP("password", "P", config.DefaultPassword, "Control interface password")
	askPassword := fs.Bool("ask-password", false, "Prompt for the password instead")

	// ── session ──────────────────────────────────────────────────
	fs.IntP("retries", "r", config.DefaultRetries, "Reconnect budget per command")
	fs.IntP("timeout", "w", int(config.DefaultCommandTimeout.Seconds()),
		"Command timeout in seconds (0 = wait forever)")
	fs.Int("reconnect-delay", 0, "Delay before reconnecting, in milliseconds")

	// ── output ───────────────────────────────────────────────────
	fs.CountP("verbose", "v", "Increase verbosity (repeatable)")
	fs.Bool("metrics", false, "Print session metrics to stderr on exit")

	configFile := fs.String("config", "", "Config file (default .vlcrc.yaml in $HOME or .)")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp || len(args) == 0 {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("vlcrc %s\n", version)
		return nil
	}

	cfg, err := config.Load(*configFile, fs)
	if err != nil {
		return err
	}
	if *askPassword {
		pw, err := readPassword(os.Stdin, os.Stderr)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		cfg.Password = pw
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── positional arguments ─────────────────────────────────────
	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(fs)
		return fmt.Errorf("missing command")
	}

	// Argument errors surface before any connection is made.
	invoke, err := buildInvocation(rest[0], rest[1:])
	if err != nil {
		return err
	}

	return run(ctx, cfg, invoke, os.Stdout)
}

// run connects, authenticates and executes one prepared invocation.
func run(ctx context.Context, cfg *config.Config, invoke invocation, out io.Writer) error {
	logger := util.NewLogger(cfg.Verbose)

	client, err := vlc.Dial(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer client.Disconnect() //nolint:errcheck

	if cfg.Metrics {
		defer func() {
			fmt.Fprintln(os.Stderr, client.Metrics().JSON())
		}()
	}

	return invoke(ctx, client, out)
}

// readPassword prompts on prompt and reads a password from in without
// echo when in is a terminal, falling back to a plain line read.
func readPassword(in *os.File, prompt io.Writer) (string, error) {
	fmt.Fprint(prompt, "Password: ")
	if term.IsTerminal(int(in.Fd())) {
		pw, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `vlcrc %s – remote control for the player's telnet interface

Usage:
  vlcrc [options] <command> [args...]

Commands:
  Playback    play, stop, pause, next, prev, goto <n>, seek <sec>,
              rate <r>, faster, slower, normal, fastforward, rewind, frame
  Playlist    add <uri>, enqueue <uri>, playlist, clear,
              repeat [on|off], loop [on|off], random [on|off]
  Queries     status, info, stats, get_time, get_length, is_playing,
              get_title, sd [service]
  Audio       volume [n], volup <n>, voldown <n>, adev [dev], achan [ch],
              atrack [n]
  Titles      title [x], title_n, title_p, chapter [x], chapter_n, chapter_p
  Video       vtrack [n], strack [n], vratio [r], crop [c], zoom [z],
              vdeinterlace [mode], vdeinterlace_mode [mode], snapshot,
              fullscreen [on|off]
  Admin       vlm, logout, shutdown

Options:
%s
Environment variables (VLCRC_HOST, VLCRC_PASSWORD, ...) and a
.vlcrc.yaml config file are read with flag > env > file precedence.
`, version, fs.FlagUsages())
}
