package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const ansiReset = "\x1b[0m"

// truncateANSI shortens colored text to width display cells, keeping escape
// sequences intact, and resets attributes so colors never bleed into the
// next cell.
func truncateANSI(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(value) <= width {
		return value + ansiReset
	}
	return truncate.StringWithTail(value, uint(width), "…") + ansiReset
}

// truncatePlain strips escape sequences and shortens the text to width cells.
func truncatePlain(value string, width int) string {
	if width <= 0 {
		return ""
	}
	plain := ansi.Strip(value)
	if ansi.StringWidth(plain) <= width {
		return plain
	}
	return truncate.StringWithTail(plain, uint(width), "…")
}

// truncateMiddle shortens a string in the middle, preserving start and end.
// Paths keep more of their end, where the file name is.
func truncateMiddle(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 5 {
		return string(runes[:max])
	}
	endLen := (max - 1) * 2 / 3
	startLen := max - 1 - endLen
	return string(runes[:startLen]) + "…" + string(runes[len(runes)-endLen:])
}

// truncateLines applies truncateANSI to every line of a rendered block.
func truncateLines(text string, width int) string {
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = truncateANSI(line, width)
	}
	return strings.Join(lines, "\n")
}

// clampLines keeps at most n lines of text.
func clampLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[:n], "\n")
}

// padRight pads a string with spaces to the given display width.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// checkbox renders a labelled toggle.
func checkbox(label string, on bool) string {
	if on {
		return "[x] " + label
	}
	return "[ ] " + label
}
