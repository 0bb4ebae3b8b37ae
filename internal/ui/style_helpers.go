package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// BgStyle provides helpers for rendering text with consistent background colors.
// This solves lipgloss's limitation where ANSI reset codes between styled segments
// cause gaps in background color. See: https://github.com/charmbracelet/lipgloss/discussions/78
type BgStyle struct {
	bg    lipgloss.Color
	space string // cached styled space
}

// NewBgStyle creates a new background style helper for the given color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render renders text with a style, ensuring ALL characters including spaces
// have the background color applied.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	if !strings.Contains(text, " ") {
		return style.Background(b.bg).Render(text)
	}

	wordStyle := style.Background(b.bg)
	words := strings.Split(text, " ")
	result := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			result = append(result, wordStyle.Render(w))
		} else {
			result = append(result, "")
		}
	}
	return strings.Join(result, b.space)
}

// Space returns a single styled space.
func (b BgStyle) Space() string {
	return b.space
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Sep returns a styled separator string.
func (b BgStyle) Sep(sep string) string {
	return lipgloss.NewStyle().Background(b.bg).Render(sep)
}

// Join joins parts with a styled separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.Sep(sep))
}

// renderBox draws content inside a rounded border of the given outer size,
// with the title set into the top edge.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	iw, ih := inner(width, height)
	if iw == 0 || ih == 0 {
		return ""
	}

	color := lipgloss.Color(m.theme.Border)
	if focused {
		color = lipgloss.Color(m.theme.BorderFocus)
	}

	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, true, true, true).
		BorderForeground(color).
		Width(iw).
		Height(ih).
		Render(clampLines(content, ih))

	return boxTop(title, width, color) + "\n" + body
}

// boxTop renders the top border line with an inset title.
func boxTop(title string, width int, color lipgloss.Color) string {
	border := lipgloss.RoundedBorder()
	label := ""
	if title = truncatePlain(title, width-6); title != "" {
		label = " " + title + " "
	}
	fill := max(width-3-ansi.StringWidth(label), 0)
	line := border.TopLeft + border.Top + label + strings.Repeat(border.Top, fill) + border.TopRight
	return lipgloss.NewStyle().Foreground(color).Render(line)
}
