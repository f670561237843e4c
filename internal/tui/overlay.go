package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderPopup draws popup in a bordered card centred over base. Without a
// known window size the card is appended below base instead.
func renderPopup(base, popup string, width, height int) string {
	card := cardStyle.Render(popup)
	if width <= 0 || height <= 0 {
		return base + "\n\n" + card
	}
	cardRows := strings.Split(card, "\n")
	x := max(0, (width-lipgloss.Width(card))/2)
	y := max(0, (height-len(cardRows))/2)

	rows := canvas(base, width, height)
	for i, r := range cardRows {
		if y+i >= height {
			break
		}
		rows[y+i] = splice(rows[y+i], r, x, width)
	}
	return strings.Join(rows, "\n")
}

// canvas cuts or pads s to exactly height rows of width cells.
func canvas(s string, width, height int) []string {
	rows := strings.Split(s, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i, r := range rows {
		rows[i] = padCells(r, width)
	}
	return rows
}

// splice replaces the cells of row from column x onwards with seg.
func splice(row, seg string, x, width int) string {
	left := ansi.Truncate(row, x, "")
	right := ansi.TruncateLeft(row, x+ansi.StringWidth(seg), "")
	return padCells(left+seg+right, width)
}

func padCells(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
