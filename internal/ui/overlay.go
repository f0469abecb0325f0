package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const sgrReset = "\x1b[0m"

// overlay draws box over base with its top-left corner at (col, row). Both
// may contain ANSI styling.
func overlay(base, box string, col, row int) string {
	if box == "" {
		return base
	}
	lines := strings.Split(base, "\n")
	for i, bl := range strings.Split(box, "\n") {
		r := row + i
		if r < 0 || r >= len(lines) {
			continue
		}
		line := lines[r]
		left := ansi.Truncate(line, col, "")
		if pad := col - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(line, col+ansi.StringWidth(bl), "")
		lines[r] = left + sgrReset + bl + sgrReset + right
	}
	return strings.Join(lines, "\n")
}
