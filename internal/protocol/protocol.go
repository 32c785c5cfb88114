// Package protocol implements the text grammar of the player's control
// interface: the prompt framing, the error-line classification, and the
// pure decoders that turn raw response lines into typed results.
//
// Nothing in this package touches the network; every function is a pure
// transformation over lines, which keeps the whole response grammar
// unit-testable without a live player.
package protocol

import "strings"

// Wire literals of the control interface.
const (
	// Prompt terminates every command response.
	Prompt = "> "

	// PasswordPrompt is sent by the server before authentication, with
	// no trailing newline.
	PasswordPrompt = "Password: "

	// LineEnding separates response lines.
	LineEnding = "\r\n"
)

// SplitResponse decodes a raw prompt-terminated response into its lines.
// The final fragment produced by the trailing prompt is dropped.
func SplitResponse(raw []byte) []string {
	lines := strings.Split(string(raw), LineEnding)
	return lines[:len(lines)-1]
}

// First returns the first response line, or a ParseError when the
// response is empty. what names the command family for diagnostics.
func First(lines []string, what string) (string, error) {
	if len(lines) == 0 {
		return "", parseErr(what, "", "empty response")
	}
	return lines[0], nil
}
