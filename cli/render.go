package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// writeTable renders rows under a dimmed header, columns padded to their
// widest cell. Widths use display width, not byte length, so names with
// wide runes stay aligned.
func writeTable(w io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	writeRow := func(cells []string, style func(string) string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			padded := cell + strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell))
			if i == len(cells)-1 {
				padded = cell
			}
			parts[i] = style(padded)
		}
		_, _ = fmt.Fprintln(w, strings.Join(parts, "  "))
	}

	writeRow(header, func(s string) string { return dimStyle.Render(s) })
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
}

// terminalWidth returns the width of the attached terminal, or a sane
// default when output is redirected.
func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// truncateToWidth shortens a string to fit the given display width.
func truncateToWidth(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
