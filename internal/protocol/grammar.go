package protocol

import "regexp"

// ReplyKind classifies the first line of a command response.
type ReplyKind int

const (
	// ReplyOutput marks ordinary output; the line is part of the result.
	ReplyOutput ReplyKind = iota

	// ReplyUnknownCommand marks the server's unrecognized-command notice.
	ReplyUnknownCommand

	// ReplyScriptError marks an internal error reported by the remote
	// scripting layer for an otherwise well-formed command.
	ReplyScriptError
)

// Protocol-level error signals embedded in the first response line.
// Matching is prefix-anchored: the server pads nothing before them.
var (
	unknownCommandPattern = regexp.MustCompile("^Unknown command `.*'\\. Type `help' for help\\.")
	scriptErrorPattern    = regexp.MustCompile(`^Error in.*`)
)

// ClassifyReply inspects a first response line and returns its kind.
// For ReplyScriptError the matched error text is returned as well.
func ClassifyReply(line string) (ReplyKind, string) {
	if unknownCommandPattern.MatchString(line) {
		return ReplyUnknownCommand, ""
	}
	if m := scriptErrorPattern.FindString(line); m != "" {
		return ReplyScriptError, m
	}
	return ReplyOutput, ""
}
