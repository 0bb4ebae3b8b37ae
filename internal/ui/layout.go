package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the preview is stacked
	// under the results instead of beside them.
	LayoutCompactWidth = 100
)

// Fixed chrome around the panes.
const (
	headerLines = 2 // query line, glob line
	footerLines = 2 // status bar, command bar
)

// Header cells not available to the text inputs.
const (
	queryInputReserve = 2 + 6 + 7 + 2 + 23 + 1
	globInputReserve  = 2 + 6 + 7 + 1

	// Command bar cells kept free for the theme indicator.
	themeIndicatorReserve = 2 + 20
)

// Timing constants.
const (
	// DefaultTickInterval is how often the results manager is pumped.
	DefaultTickInterval = 50 * time.Millisecond

	// ToastDuration is how long transient status messages stay visible.
	ToastDuration = 3 * time.Second
)

// paneLayout holds the outer sizes of the results and preview boxes. A zero
// preview size means the preview is hidden.
type paneLayout struct {
	ListWidth     int
	ListHeight    int
	PreviewWidth  int
	PreviewHeight int
	Stacked       bool
}

func computeLayout(width, height int, showPreview bool) paneLayout {
	body := max(height-headerLines-footerLines, 0)
	l := paneLayout{ListWidth: width, ListHeight: body}
	if !showPreview || body == 0 || width == 0 {
		return l
	}

	if width >= LayoutCompactWidth {
		l.ListWidth = width / 2
		l.PreviewWidth = width - l.ListWidth
		l.PreviewHeight = body
		return l
	}

	l.Stacked = true
	l.ListHeight = body / 2
	l.PreviewWidth = width
	l.PreviewHeight = body - l.ListHeight
	return l
}

// inner returns the content size of a bordered box.
func inner(width, height int) (int, int) {
	return max(width-2, 0), max(height-2, 0)
}

// listRows is the number of result rows visible at once.
func (l paneLayout) listRows() int {
	_, h := inner(l.ListWidth, l.ListHeight)
	return h
}
