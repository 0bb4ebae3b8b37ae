package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/seek/internal/results"
)

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if body := m.renderBody(); body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())

	return b.String()
}

// renderHeader renders the query line and the glob line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	opts := m.manager.Options()
	toggles := bg.Join([]string{
		bg.Render(checkbox("hidden", opts.ShowHidden), toggleStyle(styles, opts.ShowHidden)),
		bg.Render(checkbox("preview", m.manager.ShowPreview()), toggleStyle(styles, m.manager.ShowPreview())),
	}, "  ")

	queryLine := bg.Render("seek", styles.Logo) + bg.Spaces(2) + m.query.View()
	gap := m.width - 2 - lipgloss.Width(queryLine) - lipgloss.Width(toggles)
	queryLine += bg.Spaces(max(gap, 1)) + toggles

	globLine := bg.Spaces(6) + m.globs.View()

	line := styles.Header.Width(m.width).MaxWidth(m.width).MaxHeight(1)
	return line.Render(queryLine) + "\n" + line.Render(globLine)
}

func toggleStyle(styles Styles, on bool) lipgloss.Style {
	if on {
		return styles.AccentText
	}
	return styles.MutedText
}

// renderBody renders the results box and, when enabled, the preview box.
func (m Model) renderBody() string {
	list := m.renderResults()
	if m.layout.PreviewWidth == 0 || m.layout.PreviewHeight == 0 {
		return list
	}
	preview := m.renderPreview()
	if m.layout.Stacked {
		return lipgloss.JoinVertical(lipgloss.Left, list, preview)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, preview)
}

// renderResults renders the visible window of the result list. Rows keep the
// search tool's colors except the selected row, which is drawn plain on the
// selection background.
func (m Model) renderResults() string {
	iw, rows := inner(m.layout.ListWidth, m.layout.ListHeight)
	styles := m.theme.Styles()
	records := m.manager.Records()
	selected, hasSelection := m.manager.Selection()

	lines := make([]string, 0, rows)
	for i := m.listOffset; i < len(records) && len(lines) < rows; i++ {
		if hasSelection && i == selected {
			row := padRight(truncatePlain(records[i].Display, iw), iw)
			lines = append(lines, styles.Selected.Render(row))
			continue
		}
		lines = append(lines, truncateANSI(records[i].Display, iw))
	}
	if len(records) == 0 && rows > 0 {
		lines = append(lines, styles.FaintText.Render(truncatePlain(m.emptyMessage(), iw)))
	}

	title := fmt.Sprintf("Results (%d)", len(records))
	return m.renderBox(title, strings.Join(lines, "\n"), m.layout.ListWidth, m.layout.ListHeight, true)
}

func (m Model) emptyMessage() string {
	switch {
	case m.manager.LastError() != nil:
		return "Search could not start"
	case m.manager.Options().IsEmpty():
		return "Type a pattern to search"
	case m.manager.Pending(), m.manager.Searching():
		return "Searching..."
	default:
		return "No matches"
	}
}

// renderPreview renders the preview box around the viewport.
func (m Model) renderPreview() string {
	title := "Preview"
	if p := m.manager.Preview(); p.Path != "" {
		title = fmt.Sprintf("%s:%d", truncateMiddle(p.Path, max(m.layout.PreviewWidth-14, 8)), p.Line)
	}
	return m.renderBox(title, m.preview.View(), m.layout.PreviewWidth, m.layout.PreviewHeight, false)
}

// syncPreview loads the manager's preview state into the viewport when it
// changed. A freshly shown preview is scrolled so the target line sits in
// the middle of the pane.
func (m *Model) syncPreview() {
	p := m.manager.Preview()
	current := previewKey{path: p.Path, line: p.Line, status: p.Status}
	if current == m.previewShown {
		return
	}
	m.previewShown = current

	styles := m.theme.Styles()
	switch p.Status {
	case results.PreviewShown:
		m.preview.SetContent(truncateLines(p.Artifact.Text, m.preview.Width))
		m.preview.SetYOffset(p.Artifact.Offset(m.preview.Height))
	case results.PreviewLoading:
		m.preview.SetContent(styles.FaintText.Render("Loading preview..."))
		m.preview.GotoTop()
	case results.PreviewFailed:
		msg := "preview failed"
		if p.Err != nil {
			msg = p.Err.Error()
		}
		m.preview.SetContent(styles.DangerText.Render(truncatePlain(msg, m.preview.Width)))
		m.preview.GotoTop()
	default:
		m.preview.SetContent("")
		m.preview.GotoTop()
	}
}

func (m *Model) scrollPreview(delta int) {
	m.preview.SetYOffset(m.preview.YOffset + delta)
}

// renderStatusBar renders search progress, errors and transient messages.
func (m Model) renderStatusBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	count := m.manager.Count()
	parts := []string{
		bg.Render(fmt.Sprintf("%d", count), styles.Text) + bg.Space() + bg.Render(plural(count, "result", "results"), styles.MutedText),
	}

	switch {
	case m.manager.Pending(), m.manager.Searching():
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText)+bg.Space()+bg.Render("searching", styles.AccentText))
	case m.manager.Finished():
		parts = append(parts, bg.Render("done", styles.SuccessText))
	}

	if err := m.manager.LastError(); err != nil {
		parts = append(parts, bg.Render(truncatePlain(err.Error(), max(m.width/2, 10)), styles.DangerText))
	}

	if m.toast != "" {
		parts = append(parts, bg.Render(m.toast, styles.WarningText))
	}

	left := strings.Join(parts, sep)
	if location, ok := m.manager.SelectedLocation(); ok {
		right := bg.Render(truncateMiddle(location, max(m.width/3, 10)), styles.InfoText)
		gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
		if gap > 0 {
			left += bg.Spaces(gap) + right
		}
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(left)
}

// renderCommandBar renders the short key help and the theme indicator.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	theme := bg.Render("ctrl+t", styles.AccentText) + bg.Sep(":") + bg.Render(m.theme.Name, styles.FaintText)

	// help.Model does not always honor Width, so the hints are cut to
	// whatever the theme indicator leaves.
	room := max(m.width-2-lipgloss.Width(theme)-2, 0)
	hints := m.help.ShortHelpView(m.keys.ShortHelp())
	if lipgloss.Width(hints) > room {
		hints = ansi.Truncate(hints, room, "…")
	}

	return styles.Footer.Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(hints + bg.Spaces(2) + theme)
}

// applyTheme restyles the bubbles components for the current theme.
func (m *Model) applyTheme() {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)

	for _, input := range []*textinput.Model{&m.query, &m.globs} {
		input.PromptStyle = styles.AccentText
		input.TextStyle = styles.Text
		input.PlaceholderStyle = styles.FaintText
		input.Cursor.Style = styles.AccentText
	}

	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.spinner.Style = styles.AccentText
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
