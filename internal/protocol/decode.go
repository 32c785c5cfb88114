package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"vlcrc/internal/errors"
)

func parseErr(what, line, reason string) error {
	return &errors.ParseError{What: what, Line: line, Reason: reason}
}

// ── Status ───────────────────────────────────────────────────────────

// Status is the decoded result of the status command.
type Status struct {
	Input    string // playback input location, %20-joined
	HasInput bool   // false for the 2-line response shape
	Volume   int
	State    string
}

// ParseStatus decodes the 2- or 3-line status response.
//
// The 3-line shape is:
//
//	( new input: <location> )
//	( audio volume: <n> )
//	( state <s> )
//
// The 2-line shape omits the input line. Any other line count, or a
// line missing its expected token, is a parse failure.
func ParseStatus(lines []string) (Status, error) {
	switch len(lines) {
	case 3:
		input, err := statusInput(lines[0])
		if err != nil {
			return Status{}, err
		}
		volume, err := statusToken(lines[1], 3, "volume")
		if err != nil {
			return Status{}, err
		}
		state, err := statusField(lines[2], 2, "state")
		if err != nil {
			return Status{}, err
		}
		return Status{Input: input, HasInput: true, Volume: volume, State: state}, nil
	case 2:
		volume, err := statusToken(lines[0], 3, "volume")
		if err != nil {
			return Status{}, err
		}
		state, err := statusField(lines[1], 2, "state")
		if err != nil {
			return Status{}, err
		}
		return Status{Volume: volume, State: state}, nil
	default:
		return Status{}, parseErr("status", "", fmt.Sprintf("expected 2 or 3 lines, got %d", len(lines)))
	}
}

// statusInput joins the location tokens (index 3 through second-to-last)
// with %20, reproducing the URI-ish form the input line was split from.
func statusInput(line string) (string, error) {
	tokens := strings.Split(line, " ")
	if len(tokens) < 5 {
		return "", nil
	}
	return strings.Join(tokens[3:len(tokens)-1], "%20"), nil
}

func statusField(line string, index int, what string) (string, error) {
	tokens := strings.Split(line, " ")
	if index >= len(tokens) {
		return "", parseErr("status", line, fmt.Sprintf("missing %s token", what))
	}
	return tokens[index], nil
}

func statusToken(line string, index int, what string) (int, error) {
	tok, err := statusField(line, index, what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, parseErr("status", line, fmt.Sprintf("%s is not an integer", what))
	}
	return n, nil
}

// ── Info blocks ──────────────────────────────────────────────────────

// SectionKey identifies an info section: either a textual label or, when
// the label's second token is numeric, an integer (e.g. stream numbers).
type SectionKey struct {
	Text    string
	Number  int
	Numeric bool
}

// Key builds a SectionKey from a raw label token, coercing to an
// integer when possible.
func Key(token string) SectionKey {
	if n, err := strconv.Atoi(token); err == nil {
		return SectionKey{Number: n, Numeric: true}
	}
	return SectionKey{Text: token}
}

func (k SectionKey) String() string {
	if k.Numeric {
		return strconv.Itoa(k.Number)
	}
	return k.Text
}

// Field is one "name: value" line within a section.
type Field struct {
	Name  string
	Value Value
}

// Section is one "+----[ label ]" block and its fields, in input order.
type Section struct {
	Key    SectionKey
	Fields []Field
}

// Field returns the value stored under name.
func (s *Section) Field(name string) (Value, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Info is the decoded result of the info and stats commands: sections in
// input order, each holding its fields in input order.
type Info struct {
	Sections []Section
}

// Section returns the section whose key renders as key.
func (in *Info) Section(key string) (*Section, bool) {
	for i := range in.Sections {
		if in.Sections[i].Key.String() == key {
			return &in.Sections[i], true
		}
	}
	return nil, false
}

// ParseInfo decodes the sectioned block format shared by the info and
// stats commands:
//
//	+----[ Stream 5 ]
//	| Description: Closed captions 4
//	+----[ end of stream info ]
//
// A "+" line opens a section (the end-of-info sentinel opens none); a
// "|" line adds a field to the currently open section; anything else is
// a structural violation.
func ParseInfo(lines []string) (Info, error) {
	var info Info
	current := -1 // index into info.Sections, -1 before the first "+" line

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			if strings.Contains(line, "end of stream info") {
				continue
			}
			key, err := sectionKey(line)
			if err != nil {
				return Info{}, err
			}
			info.Sections = append(info.Sections, Section{Key: key})
			current = len(info.Sections) - 1

		case strings.HasPrefix(line, "|"):
			if len(line) <= 2 {
				continue // bare separator line
			}
			if current < 0 {
				return Info{}, parseErr("info", line, "data line before any section")
			}
			rest := line[2:]
			colon := strings.Index(rest, ":")
			if colon < 0 {
				return Info{}, parseErr("info", line, "field line without a colon")
			}
			name := strings.TrimSpace(rest[:colon])
			info.Sections[current].Fields = append(info.Sections[current].Fields, Field{
				Name:  name,
				Value: CoerceValue(rest[colon+1:]),
			})

		default:
			return Info{}, parseErr("info", line, "unexpected line in info output")
		}
	}
	return info, nil
}

// sectionKey extracts the bracketed label of a "+" line and takes its
// second whitespace-separated token as the key.
func sectionKey(line string) (SectionKey, error) {
	open := strings.Index(line, "[")
	if open < 0 {
		return SectionKey{}, parseErr("info", line, "section line without a label")
	}
	label := strings.TrimSpace(strings.ReplaceAll(line[open+1:], "]", ""))
	tokens := strings.Fields(label)
	if len(tokens) < 2 {
		return SectionKey{}, parseErr("info", line, "section label has no key token")
	}
	return Key(tokens[1]), nil
}

// ── Scalars ──────────────────────────────────────────────────────────

// ParseToggle decodes enabled/disabled notices such as the services
// discovery toggles.
func ParseToggle(lines []string) (bool, error) {
	first, err := First(lines, "toggle")
	if err != nil {
		return false, err
	}
	switch {
	case strings.Contains(first, "enabled."):
		return true, nil
	case strings.Contains(first, "disabled."):
		return false, nil
	default:
		return false, parseErr("toggle", first, "expected enabled/disabled notice")
	}
}

// ParseInt decodes a single-line numeric response. An empty line
// decodes to 0.
func ParseInt(lines []string, what string) (int, error) {
	first, err := First(lines, what)
	if err != nil {
		return 0, err
	}
	if first == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(first)
	if err != nil {
		return 0, parseErr(what, first, "not an integer")
	}
	return n, nil
}

// ParseFlag decodes the is_playing style response: the literal "1" is
// true, anything else false.
func ParseFlag(lines []string, what string) (bool, error) {
	first, err := First(lines, what)
	if err != nil {
		return false, err
	}
	return first == "1", nil
}
