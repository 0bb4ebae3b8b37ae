package search

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// Record is one line of search output. Display keeps the producer's styling.
// Path and Line are only meaningful when Actionable is true.
type Record struct {
	Display    string
	Path       string
	Line       int
	Actionable bool
}

// Location returns the file and line the record points at.
func (r Record) Location() (string, int, bool) {
	if !r.Actionable {
		return "", 0, false
	}
	return r.Path, r.Line, true
}

// ParseLine turns one raw "path:line:column:content" line into a Record.
// Lines that do not match are kept as display-only records.
func ParseLine(raw []byte) Record {
	rec := Record{Display: displayText(raw)}

	first := indexSeparator(raw, 0)
	if first < 0 {
		return rec
	}
	second := indexSeparator(raw, first+1)
	if second < 0 {
		return rec
	}

	path, ok := plainText(raw[:first])
	if !ok || path == "" {
		return rec
	}
	lineText, ok := plainText(raw[first+1 : second])
	if !ok {
		return rec
	}
	line, err := strconv.Atoi(lineText)
	if err != nil || line <= 0 {
		return rec
	}

	rec.Path = path
	rec.Line = line
	rec.Actionable = true
	return rec
}

func displayText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	return strings.ToValidUTF8(string(raw), "\uFFFD")
}

func plainText(b []byte) (string, bool) {
	if !utf8.Valid(b) {
		return "", false
	}
	return ansi.Strip(string(b)), true
}

// indexSeparator returns the offset of the first ':' at or after start that
// is not part of a terminal escape sequence. Hyperlink sequences (OSC 8)
// embed URLs, so colons inside them must not count.
func indexSeparator(raw []byte, start int) int {
	for i := start; i < len(raw); i++ {
		switch raw[i] {
		case ':':
			return i
		case 0x1b:
			i = skipEscape(raw, i)
		}
	}
	return -1
}

// skipEscape returns the index of the last byte of the escape sequence that
// begins at raw[i].
func skipEscape(raw []byte, i int) int {
	if i+1 >= len(raw) {
		return i
	}
	switch raw[i+1] {
	case '[':
		for j := i + 2; j < len(raw); j++ {
			if raw[j] >= 0x40 && raw[j] <= 0x7e {
				return j
			}
		}
		return len(raw) - 1
	case ']':
		for j := i + 2; j < len(raw); j++ {
			if raw[j] == 0x07 {
				return j
			}
			if raw[j] == 0x1b && j+1 < len(raw) && raw[j+1] == '\\' {
				return j + 1
			}
		}
		return len(raw) - 1
	default:
		return i + 1
	}
}
