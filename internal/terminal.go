package internal

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"
)

// minRenderWidth keeps word wrapping sane on very narrow terminals
const minRenderWidth = 40

// RenderMarkdown formats markdown for a terminal of the given width
func RenderMarkdown(md string, width int) (string, error) {
	if width < minRenderWidth {
		width = minRenderWidth
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}

// Truncate shortens s to at most width display cells, marking the cut
// with an ellipsis. Line breaks are folded into spaces.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width display cells
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
