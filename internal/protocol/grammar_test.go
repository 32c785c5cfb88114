package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyReply(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind ReplyKind
		wantText string
	}{
		{
			"unknown command",
			"Unknown command `plya'. Type `help' for help.",
			ReplyUnknownCommand, "",
		},
		{
			"script error",
			"Error in `playlist': something broke",
			ReplyScriptError, "Error in `playlist': something broke",
		},
		{
			"ordinary output",
			"( state playing )",
			ReplyOutput, "",
		},
		{
			"error marker mid-line is output",
			"status change: Error in nothing",
			ReplyOutput, "",
		},
		{
			"empty line",
			"",
			ReplyOutput, "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, text := ClassifyReply(tt.line)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestSplitResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"two lines and prompt", "a\r\nb\r\n> ", []string{"a", "b"}},
		{"prompt only", "> ", []string{}},
		{"empty", "", []string{}},
		{"embedded empty line", "\r\nWelcome\r\n> ", []string{"", "Welcome"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitResponse([]byte(tt.raw))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceValue_Order(t *testing.T) {
	v := CoerceValue(" 42 ")
	assert.Equal(t, KindInt, v.Kind())

	v = CoerceValue("42.5")
	assert.Equal(t, KindFloat, v.Kind())

	v = CoerceValue("  trimmed text  ")
	assert.Equal(t, KindText, v.Kind())
	assert.Equal(t, "trimmed text", v.String())
}
