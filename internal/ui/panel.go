package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel colors
const (
	colorPanelBorder = "#9D4EDD"
	colorPanelTitle  = "#FFD166"
	colorPanelBody   = "252"
	colorPanelHint   = "60"

	panelMaxWidth = 44
	panelMinWidth = 16
)

const defaultDetail = "Nothing here yet."

// PanelModel is the detail overlay shown while the camera is parked at a
// category.
type PanelModel struct {
	labels  map[string]string
	details map[string]string

	width   int
	height  int
	id      string
	visible bool
}

// NewPanelModel creates a hidden panel. details maps category ids to body
// text.
func NewPanelModel(labels, details map[string]string) PanelModel {
	return PanelModel{labels: labels, details: details}
}

// SetSize records the content area the panel floats over.
func (p PanelModel) SetSize(width, height int) PanelModel {
	p.width = width
	p.height = height
	return p
}

// Show reveals the panel for category id.
func (p PanelModel) Show(id string) PanelModel {
	p.id = id
	p.visible = true
	return p
}

// Hide hides the panel.
func (p PanelModel) Hide() PanelModel {
	p.visible = false
	p.id = ""
	return p
}

// Visible reports whether the panel is shown and fits the area.
func (p PanelModel) Visible() bool {
	return p.visible && p.boxWidth() >= panelMinWidth && p.height >= 5
}

// ID returns the category shown.
func (p PanelModel) ID() string { return p.id }

// Label returns the display label for id, falling back to the id itself.
func (p PanelModel) Label(id string) string {
	if l, ok := p.labels[id]; ok && l != "" {
		return l
	}
	return id
}

func (p PanelModel) boxWidth() int {
	w := p.width / 3
	if w > panelMaxWidth {
		w = panelMaxWidth
	}
	return w
}

// Anchor returns the cell of the panel's top-left corner within the
// content area.
func (p PanelModel) Anchor() (col, row int) {
	col = p.width - p.boxWidth() - 2
	if col < 0 {
		col = 0
	}
	return col, 1
}

// View renders the panel box.
func (p PanelModel) View() string {
	if !p.Visible() {
		return ""
	}
	boxW := p.boxWidth()
	inner := boxW - 4 // border and padding

	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorPanelTitle)).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorPanelBody)).Width(inner)
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorPanelHint))

	body := p.details[p.id]
	if strings.TrimSpace(body) == "" {
		body = defaultDetail
	}

	// border (2) + title + blank + hint
	maxBody := p.height - 2 - 3 - 1
	bodyLines := strings.Split(bodyStyle.Render(body), "\n")
	if maxBody < 1 {
		maxBody = 1
	}
	if len(bodyLines) > maxBody {
		bodyLines = bodyLines[:maxBody]
	}

	lines := []string{
		titleStyle.Render(truncate(p.Label(p.id), inner)),
		"",
	}
	lines = append(lines, bodyLines...)
	lines = append(lines, hintStyle.Render("esc: back to orbit"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorPanelBorder)).
		Padding(0, 1).
		Width(boxW - 2)
	return box.Render(strings.Join(lines, "\n"))
}

// truncate shortens s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
