package vlc

import (
	"context"
	"strconv"

	"vlcrc/internal/protocol"
)

// The command surface is a catalog of one-line builders over Run: each
// formats a single protocol command and hands the response to the
// matching decoder. Setters taking numbers are integer-typed so that a
// malformed argument fails before any bytes are sent.

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// first runs a command and returns the first response line verbatim.
// Several getters are intentionally left unparsed: the upstream
// interface prints free-form text for them.
func (c *Client) first(ctx context.Context, command string) (string, error) {
	lines, err := c.Run(ctx, command)
	if err != nil {
		return "", err
	}
	return protocol.First(lines, command)
}

// run discards the response of a command that produces no useful output.
func (c *Client) run(ctx context.Context, command string) error {
	_, err := c.Run(ctx, command)
	return err
}

// ── Playback control ─────────────────────────────────────────────────

// Play starts the stream.
func (c *Client) Play(ctx context.Context) error { return c.run(ctx, "play") }

// Stop stops the stream.
func (c *Client) Stop(ctx context.Context) error { return c.run(ctx, "stop") }

// Pause toggles pause.
func (c *Client) Pause(ctx context.Context) error { return c.run(ctx, "pause") }

// Next skips to the next playlist item.
func (c *Client) Next(ctx context.Context) error { return c.run(ctx, "next") }

// Prev goes back to the previous playlist item.
func (c *Client) Prev(ctx context.Context) error { return c.run(ctx, "prev") }

// Goto jumps to the playlist item at index.
func (c *Client) Goto(ctx context.Context, index int) error {
	return c.run(ctx, "goto "+strconv.Itoa(index))
}

// Seek jumps to an absolute position in seconds.
func (c *Client) Seek(ctx context.Context, seconds int) error {
	return c.run(ctx, "seek "+strconv.Itoa(seconds))
}

// Frame plays frame by frame.
func (c *Client) Frame(ctx context.Context) error { return c.run(ctx, "frame") }

// FastForward sets the maximum playback rate.
func (c *Client) FastForward(ctx context.Context) error { return c.run(ctx, "fastforward") }

// Rewind sets the minimum playback rate.
func (c *Client) Rewind(ctx context.Context) error { return c.run(ctx, "rewind") }

// Faster plays the stream faster.
func (c *Client) Faster(ctx context.Context) error { return c.run(ctx, "faster") }

// Slower plays the stream slower.
func (c *Client) Slower(ctx context.Context) error { return c.run(ctx, "slower") }

// Normal restores the normal playback rate.
func (c *Client) Normal(ctx context.Context) error { return c.run(ctx, "normal") }

// Rate sets the playback rate to an explicit value.
func (c *Client) Rate(ctx context.Context, rate float64) error {
	return c.run(ctx, "rate "+strconv.FormatFloat(rate, 'g', -1, 64))
}

// ── Playlist control ─────────────────────────────────────────────────

// Add appends an item to the playlist and starts playing it.
func (c *Client) Add(ctx context.Context, uri string) error {
	return c.run(ctx, "add "+uri)
}

// Enqueue appends an item to the playlist without playing it.
func (c *Client) Enqueue(ctx context.Context, uri string) error {
	return c.run(ctx, "enqueue "+uri)
}

// Playlist returns the playlist listing as raw lines.
func (c *Client) Playlist(ctx context.Context) ([]string, error) {
	return c.Run(ctx, "playlist")
}

// Clear empties the playlist.
func (c *Client) Clear(ctx context.Context) error { return c.run(ctx, "clear") }

// Repeat toggles single-item repeat.
func (c *Client) Repeat(ctx context.Context) error { return c.run(ctx, "repeat") }

// SetRepeat switches single-item repeat explicitly on or off.
func (c *Client) SetRepeat(ctx context.Context, on bool) error {
	return c.run(ctx, "repeat "+onOff(on))
}

// Loop toggles playlist looping.
func (c *Client) Loop(ctx context.Context) error { return c.run(ctx, "loop") }

// SetLoop switches playlist looping explicitly on or off.
func (c *Client) SetLoop(ctx context.Context, on bool) error {
	return c.run(ctx, "loop "+onOff(on))
}

// Random toggles random playback order.
func (c *Client) Random(ctx context.Context) error { return c.run(ctx, "random") }

// SetRandom switches random playback order explicitly on or off.
func (c *Client) SetRandom(ctx context.Context, on bool) error {
	return c.run(ctx, "random "+onOff(on))
}

// ── Status and stream information ────────────────────────────────────

// Status returns the current playback status.
func (c *Client) Status(ctx context.Context) (protocol.Status, error) {
	lines, err := c.Run(ctx, "status")
	if err != nil {
		return protocol.Status{}, err
	}
	return protocol.ParseStatus(lines)
}

// Info returns structured information about the current stream.
func (c *Client) Info(ctx context.Context) (protocol.Info, error) {
	lines, err := c.Run(ctx, "info")
	if err != nil {
		return protocol.Info{}, err
	}
	return protocol.ParseInfo(lines)
}

// Stats returns the current stream statistics, which share the info
// block format.
func (c *Client) Stats(ctx context.Context) (protocol.Info, error) {
	lines, err := c.Run(ctx, "stats")
	if err != nil {
		return protocol.Info{}, err
	}
	return protocol.ParseInfo(lines)
}

// GetTime returns the seconds elapsed since the stream's beginning.
func (c *Client) GetTime(ctx context.Context) (int, error) {
	lines, err := c.Run(ctx, "get_time")
	if err != nil {
		return 0, err
	}
	return protocol.ParseInt(lines, "get_time")
}

// GetLength returns the length of the current stream in seconds.
func (c *Client) GetLength(ctx context.Context) (int, error) {
	lines, err := c.Run(ctx, "get_length")
	if err != nil {
		return 0, err
	}
	return protocol.ParseInt(lines, "get_length")
}

// IsPlaying reports whether a stream is currently playing.
func (c *Client) IsPlaying(ctx context.Context) (bool, error) {
	lines, err := c.Run(ctx, "is_playing")
	if err != nil {
		return false, err
	}
	return protocol.ParseFlag(lines, "is_playing")
}

// GetTitle returns the title of the current stream.
func (c *Client) GetTitle(ctx context.Context) (string, error) {
	return c.first(ctx, "get_title")
}

// ── Services discovery ───────────────────────────────────────────────

// SD lists the services discovery modules as raw lines.
func (c *Client) SD(ctx context.Context) ([]string, error) {
	return c.Run(ctx, "sd")
}

// ToggleSD toggles a services discovery module and reports whether it
// ended up enabled.
func (c *Client) ToggleSD(ctx context.Context, service string) (bool, error) {
	lines, err := c.Run(ctx, "sd "+service)
	if err != nil {
		return false, err
	}
	return protocol.ParseToggle(lines)
}

// ── Volume ───────────────────────────────────────────────────────────

// Volume returns the audio volume (0 to 500).
func (c *Client) Volume(ctx context.Context) (int, error) {
	lines, err := c.Run(ctx, "volume")
	if err != nil {
		return 0, err
	}
	return protocol.ParseInt(lines, "volume")
}

// SetVolume sets the audio volume.
func (c *Client) SetVolume(ctx context.Context, volume int) error {
	return c.run(ctx, "volume "+strconv.Itoa(volume))
}

// VolUp raises the volume by steps.
func (c *Client) VolUp(ctx context.Context, steps int) error {
	return c.run(ctx, "volup "+strconv.Itoa(steps))
}

// VolDown lowers the volume by steps.
func (c *Client) VolDown(ctx context.Context, steps int) error {
	return c.run(ctx, "voldown "+strconv.Itoa(steps))
}

// ── Titles and chapters ──────────────────────────────────────────────

// Title returns the title of the current item (unparsed).
func (c *Client) Title(ctx context.Context) (string, error) {
	return c.first(ctx, "title")
}

// SetTitle selects a title in the current item.
func (c *Client) SetTitle(ctx context.Context, title string) error {
	return c.run(ctx, "title "+title)
}

// TitleNext selects the next title in the current item.
func (c *Client) TitleNext(ctx context.Context) error { return c.run(ctx, "title_n") }

// TitlePrev selects the previous title in the current item.
func (c *Client) TitlePrev(ctx context.Context) error { return c.run(ctx, "title_p") }

// Chapter returns the chapter of the current item (unparsed).
func (c *Client) Chapter(ctx context.Context) (string, error) {
	return c.first(ctx, "chapter")
}

// SetChapter selects a chapter in the current item.
func (c *Client) SetChapter(ctx context.Context, chapter string) error {
	return c.run(ctx, "chapter "+chapter)
}

// ChapterNext selects the next chapter in the current item.
func (c *Client) ChapterNext(ctx context.Context) error { return c.run(ctx, "chapter_n") }

// ChapterPrev selects the previous chapter in the current item.
func (c *Client) ChapterPrev(ctx context.Context) error { return c.run(ctx, "chapter_p") }

// ── Audio and video settings ─────────────────────────────────────────
//
// The getters below return the first response line verbatim; the
// upstream interface prints free-form text for them and parsing is out
// of scope by design.

// ADev returns the audio device.
func (c *Client) ADev(ctx context.Context) (string, error) { return c.first(ctx, "adev") }

// SetADev sets the audio device.
func (c *Client) SetADev(ctx context.Context, device string) error {
	return c.run(ctx, "adev "+device)
}

// AChan returns the audio channels.
func (c *Client) AChan(ctx context.Context) (string, error) { return c.first(ctx, "achan") }

// SetAChan sets the audio channels.
func (c *Client) SetAChan(ctx context.Context, channels string) error {
	return c.run(ctx, "achan "+channels)
}

// ATrack returns the audio track.
func (c *Client) ATrack(ctx context.Context) (string, error) { return c.first(ctx, "atrack") }

// SetATrack selects an audio track.
func (c *Client) SetATrack(ctx context.Context, track int) error {
	return c.run(ctx, "atrack "+strconv.Itoa(track))
}

// VTrack returns the video track.
func (c *Client) VTrack(ctx context.Context) (string, error) { return c.first(ctx, "vtrack") }

// SetVTrack selects a video track.
func (c *Client) SetVTrack(ctx context.Context, track int) error {
	return c.run(ctx, "vtrack "+strconv.Itoa(track))
}

// VRatio returns the video aspect ratio.
func (c *Client) VRatio(ctx context.Context) (string, error) { return c.first(ctx, "vratio") }

// SetVRatio sets the video aspect ratio.
func (c *Client) SetVRatio(ctx context.Context, ratio string) error {
	return c.run(ctx, "vratio "+ratio)
}

// Crop returns the video crop.
func (c *Client) Crop(ctx context.Context) (string, error) { return c.first(ctx, "crop") }

// SetCrop sets the video crop.
func (c *Client) SetCrop(ctx context.Context, crop string) error {
	return c.run(ctx, "crop "+crop)
}

// Zoom returns the video zoom.
func (c *Client) Zoom(ctx context.Context) (string, error) { return c.first(ctx, "zoom") }

// SetZoom sets the video zoom.
func (c *Client) SetZoom(ctx context.Context, zoom string) error {
	return c.run(ctx, "zoom "+zoom)
}

// VDeinterlace returns the video deinterlace state.
func (c *Client) VDeinterlace(ctx context.Context) (string, error) {
	return c.first(ctx, "vdeinterlace")
}

// SetVDeinterlace sets the video deinterlace state.
func (c *Client) SetVDeinterlace(ctx context.Context, mode string) error {
	return c.run(ctx, "vdeinterlace "+mode)
}

// VDeinterlaceMode returns the video deinterlace mode.
func (c *Client) VDeinterlaceMode(ctx context.Context) (string, error) {
	return c.first(ctx, "vdeinterlace_mode")
}

// SetVDeinterlaceMode sets the video deinterlace mode.
func (c *Client) SetVDeinterlaceMode(ctx context.Context, mode string) error {
	return c.run(ctx, "vdeinterlace_mode "+mode)
}

// STrack returns the subtitle track.
func (c *Client) STrack(ctx context.Context) (string, error) { return c.first(ctx, "strack") }

// SetSTrack selects a subtitle track.
func (c *Client) SetSTrack(ctx context.Context, track int) error {
	return c.run(ctx, "strack "+strconv.Itoa(track))
}

// Snapshot takes a video snapshot.
func (c *Client) Snapshot(ctx context.Context) error { return c.run(ctx, "snapshot") }

// Fullscreen toggles fullscreen.
func (c *Client) Fullscreen(ctx context.Context) error { return c.run(ctx, "f") }

// SetFullscreen switches fullscreen explicitly on or off.
func (c *Client) SetFullscreen(ctx context.Context, on bool) error {
	return c.run(ctx, "f "+onOff(on))
}

// ── Administration ───────────────────────────────────────────────────

// VLM loads the media manager.
func (c *Client) VLM(ctx context.Context) error { return c.run(ctx, "vlm") }

// Logout ends the session on the remote side.
func (c *Client) Logout(ctx context.Context) error { return c.run(ctx, "logout") }

// Shutdown shuts the player down.
func (c *Client) Shutdown(ctx context.Context) error { return c.run(ctx, "shutdown") }
