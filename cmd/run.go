package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vlcrc/internal/protocol"
	"vlcrc/vlc"
)

// invocation is one fully validated command, ready to run against a
// connected client.
type invocation func(ctx context.Context, c *vlc.Client, out io.Writer) error

// buildInvocation validates name and args and binds them to a client
// call. All argument errors are reported here, before any connection
// is attempted.
func buildInvocation(name string, args []string) (invocation, error) {
	switch name {
	// ── playback ─────────────────────────────────────────────────
	case "play":
		return plain(name, args, (*vlc.Client).Play)
	case "stop":
		return plain(name, args, (*vlc.Client).Stop)
	case "pause":
		return plain(name, args, (*vlc.Client).Pause)
	case "next":
		return plain(name, args, (*vlc.Client).Next)
	case "prev":
		return plain(name, args, (*vlc.Client).Prev)
	case "goto":
		n, err := intArg(name, args)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, c *vlc.Client, _ io.Writer) error {
			return c.Goto(ctx, n)
		}, nil
	case "seek":
		n, err := intArg(name, args)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, c *vlc.Client, _ io.Writer) error {
			return c.Seek(ctx, n)
		}, nil
	case "rate":
		if len(args) != 1 {
			return nil, usageError(name, "<rate>")
		}
		r, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", name, args[0])
		}
		return func(ctx context.Context, c *vlc.Client, _ io.Writer) error {
			return c.Rate(ctx, r)
		}, nil
	case "faster":
		return plain(name, args, (*vlc.Client).Faster)
	case "slower":
		return plain(name, args, (*vlc.Client).Slower)
	case "normal":
		return plain(name, args, (*vlc.Client).Normal)
	case "fastforward":
		return plain(name, args, (*vlc.Client).FastForward)
	case "rewind":
		return plain(name, args, (*vlc.Client).Rewind)
	case "frame":
		return plain(name, args, (*vlc.Client).Frame)

	// ── playlist ─────────────────────────────────────────────────
	case "add", "enqueue":
		if len(args) == 0 {
			return nil, usageError(name, "<uri>")
		}
		uri := strings.Join(args, " ")
		return func(ctx context.Context, c *vlc.Client, _ io.Writer) error {
			if name == "add" {
				return c.Add(ctx, uri)
			}
			return c.Enqueue(ctx, uri)
		}, nil
	case "playlist":
		if len(args) != 0 {
			return nil, usageError(name, "")
		}
		return func(ctx context.Context, c *vlc.Client, out io.Writer) error {
			lines, err := c.Playlist(ctx)
			if err != nil {
				return err
			}
			printLines(out, lines)
			return nil
		}, nil
	case "clear":
		return plain(name, args, (*vlc.Client).Clear)
	case "repeat":
		return toggle(name, args, (*vlc.Client).Repeat, (*vlc.Client).SetRepeat)
	case "loop":
		return toggle(name, args, (*vlc.Client).Loop, (*vlc.Client).SetLoop)
	case "random":
		return toggle(name, args, (*vlc.Client).Random, (*vlc.Client).SetRandom)

	// ── queries ──────────────────────────────────────────────────
	case "status":
		if len(args) != 0 {
			return nil, usageError(name, "")
		}
		return func(ctx context.Context, c *vlc.Client, out io.Writer) error {
			st, err := c.Status(ctx)
			if err != nil {
				return err
			}
			printStatus(out, st)
			return nil
		}, nil
	case "info", "stats":
		if len(args) != 0 {
			return nil, usageError(name, "")
		}
		return func(ctx context.Context, c *vlc.Client, out io.Writer) error {
			var (
				in  protocol.Info
				err error
			)
			if name == "info" {
				in, err = c.Info(ctx)
			} else {
				in, err = c.Stats(ctx)
			}
			if err != nil {
				return err
			}
			printInfo(out, in)
			return nil
		}, nil
	case "get_time":
		return intQuery(name, args, (*vlc.Client).GetTime)
	case "get_length":
		return intQuery(name, args, (*vlc.Client).GetLength)
	case "is_playing":
		if len(args) != 0 {
			return nil, usageError(name, "")
		}
		return func(ctx context.Context, c *vlc.Client, out io.Writer) error {
			playing, err := c.IsPlaying(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, strconv.FormatBool(playing))
			return nil
		}, nil
	case "get_title":
		return stringQuery(name, args, (*vlc.Client).GetTitle)
	case "sd":
		switch len(args) {
		case 0:
			return func(ctx context.Context, c *vlc.Client, out io.Writer) error {
				lines, err := c.SD(ctx)
				if err != nil {
					return err
				}
				printLines(out, lines)
				return nil
			}, nil
		case 1:
			service := args[0]
			return func(ctx context.Context, c *vlc.Client, out io.Writer) error {
				enabled, err := c.ToggleSD(ctx, service)
				if err != nil {
					return err
				}
				if enabled {
					fmt.Fprintln(out, "enabled")
				} else {
					fmt.Fprintln(out, "disabled")
				}
				return nil
			}, nil
		default:
			return nil, usageError(name, "[service]")
		}

	// ── audio ────────────────────────────────────────────────────
	case "volume":
		switch len(args) {
		case 0:
			return intQuery(name, args, (*vlc.Client).Volume)
		case 1:
			n, err := intArg(name, args)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context, c *vlc.Client, _ io.Writer) error {
				return c.SetVolume(ctx, n)
			}, nil
		default:
			return nil, usageError(name, "[level]")
		}
	case "volup":
		n, err := intArg(name, args)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, c *vlc.Client, _ io.Writer) error {
			return c.VolUp(ctx, n)
		}, nil
	case "voldown":
		n, err := intArg(name, args)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, c *vlc.Client, _ io.Writer) error {
			return c.VolDown(ctx, n)
		}, nil
	case "adev":
		return getOrSetString(name, args, (*vlc.Client).ADev, (*vlc.Client).SetADev)
	case "achan":
		return getOrSetString(name, args, (*vlc.Client).AChan, (*vlc.Client).SetAChan)
	case "atrack":
		return getOrSetInt(name, args, (*vlc.Client).ATrack, (*vlc.Client).SetATrack)

	// ── titles and chapters ──────────────────────────────────────
	case "title":
		return getOrSetString(name, args, (*vlc.Client).Title, (*vlc.Client).SetTitle)
	case "title_n":
		return plain(name, args, (*vlc.Client).TitleNext)
	case "title_p":
		return plain(name, args, (*vlc.Client).TitlePrev)
	case "chapter":
		return getOrSetString(name, args, (*vlc.Client).Chapter, (*vlc.Client).SetChapter)
	case "chapter_n":
		return plain(name, args, (*vlc.Client).ChapterNext)
	case "chapter_p":
		return plain(name, args, (*vlc.Client).ChapterPrev)

	// ── video ────────────────────────────────────────────────────
	case "vtrack":
		return getOrSetInt(name, args, (*vlc.Client).VTrack, (*vlc.Client).SetVTrack)
	case "strack":
		return getOrSetInt(name, args, (*vlc.Client).STrack, (*vlc.Client).SetSTrack)
	case "vratio":
		return getOrSetString(name, args, (*vlc.Client).VRatio, (*vlc.Client).SetVRatio)
	case "crop":
		return getOrSetString(name, args, (*vlc.Client).Crop, (*vlc.Client).SetCrop)
	case "zoom":
		return getOrSetString(name, args, (*vlc.Client).Zoom, (*vlc.Client).SetZoom)
	case "vdeinterlace":
		return getOrSetString(name, args, (*vlc.Client).VDeinterlace, (*vlc.Client).SetVDeinterlace)
	case "vdeinterlace_mode":
		return getOrSetString(name, args, (*vlc.Client).VDeinterlaceMode, (*vlc.Client).SetVDeinterlaceMode)
	case "snapshot":
		return plain(name, args, (*vlc.Client).Snapshot)
	case "fullscreen", "f":
		switch len(args) {
		case 0:
			return plain(name, args, (*vlc.Client).Fullscreen)
		case 1:
			on, err := onOffArg(name, args[0])
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context, c *vlc.Client, _ io.Writer) error {
				return c.SetFullscreen(ctx, on)
			}, nil
		default:
			return nil, usageError(name, "[on|off]")
		}

	// ── admin ────────────────────────────────────────────────────
	case "vlm":
		return plain(name, args, (*vlc.Client).VLM)
	case "logout":
		return plain(name, args, (*vlc.Client).Logout)
	case "shutdown":
		return plain(name, args, (*vlc.Client).Shutdown)
	}

	return nil, fmt.Errorf("unknown command %q (see vlcrc --help)", name)
}

// ── argument helpers ─────────────────────────────────────────────────

func usageError(name, args string) error {
	if args == "" {
		return fmt.Errorf("%s takes no arguments", name)
	}
	return fmt.Errorf("usage: %s %s", name, args)
}

func intArg(name string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, usageError(name, "<n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", name, args[0])
	}
	return n, nil
}

func onOffArg(name, arg string) (bool, error) {
	switch arg {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("%s: want on or off, got %q", name, arg)
}

// ── invocation builders ──────────────────────────────────────────────

func plain(name string, args []string, fn func(*vlc.Client, context.Context) error) (invocation, error) {
	if len(args) != 0 {
		return nil, usageError(name, "")
	}
	return func(ctx context.Context, c *vlc.Client, _ io.Writer) error {
		return fn(c, ctx)
	}, nil
}

func toggle(name string, args []string,
	flip func(*vlc.Client, context.Context) error,
	set func(*vlc.Client, context.Context, bool) error,
) (invocation, error) {
	switch len(args) {
	case 0:
		return func(ctx context.Context, c *vlc.Client, _ io.Writer) error {
			return flip(c, ctx)
		}, nil
	case 1:
		on, err := onOffArg(name, args[0])
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, c *vlc.Client, _ io.Writer) error {
			return set(c, ctx, on)
		}, nil
	}
	return nil, usageError(name, "[on|off]")
}

func intQuery(name string, args []string, fn func(*vlc.Client, context.Context) (int, error)) (invocation, error) {
	if len(args) != 0 {
		return nil, usageError(name, "")
	}
	return func(ctx context.Context, c *vlc.Client, out io.Writer) error {
		n, err := fn(c, ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, n)
		return nil
	}, nil
}

func stringQuery(name string, args []string, fn func(*vlc.Client, context.Context) (string, error)) (invocation, error) {
	if len(args) != 0 {
		return nil, usageError(name, "")
	}
	return func(ctx context.Context, c *vlc.Client, out io.Writer) error {
		s, err := fn(c, ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
		return nil
	}, nil
}

func getOrSetString(name string, args []string,
	get func(*vlc.Client, context.Context) (string, error),
	set func(*vlc.Client, context.Context, string) error,
) (invocation, error) {
	switch len(args) {
	case 0:
		return stringQuery(name, args, get)
	case 1:
		return func(ctx context.Context, c *vlc.Client, _ io.Writer) error {
			return set(c, ctx, args[0])
		}, nil
	}
	return nil, usageError(name, "[value]")
}

func getOrSetInt(name string, args []string,
	get func(*vlc.Client, context.Context) (string, error),
	set func(*vlc.Client, context.Context, int) error,
) (invocation, error) {
	switch len(args) {
	case 0:
		return stringQuery(name, args, get)
	case 1:
		n, err := intArg(name, args)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, c *vlc.Client, _ io.Writer) error {
			return set(c, ctx, n)
		}, nil
	}
	return nil, usageError(name, "[n]")
}

// ── rendering ────────────────────────────────────────────────────────

func printLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}

func printStatus(out io.Writer, st protocol.Status) {
	if st.HasInput {
		fmt.Fprintf(out, "input:  %s\n", st.Input)
	}
	fmt.Fprintf(out, "volume: %d\n", st.Volume)
	fmt.Fprintf(out, "state:  %s\n", st.State)
}

func printInfo(out io.Writer, in protocol.Info) {
	for i, sec := range in.Sections {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "[%s]\n", sec.Key.String())
		for _, f := range sec.Fields {
			fmt.Fprintf(out, "  %s: %s\n", f.Name, f.Value.String())
		}
	}
}
