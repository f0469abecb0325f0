// Package render rasterizes the orbital scene into a styled terminal frame.
package render

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/orbitnav/internal/geom"
	"github.com/litescript/orbitnav/internal/orbit"
	"github.com/litescript/orbitnav/internal/pick"
)

const (
	hubRadius    = 2.0
	hubTilt      = 0.35
	starCount    = 90
	starShell    = 80.0
	ringSamples  = 24 // per unit of orbit radius
	maxRingSteps = 720

	// markerBias pulls markers in front of their own orbit ring.
	markerBias = 0.5
)

// Glyphs
const (
	glyphOrbit     = '·'
	glyphHubEdge   = '∙'
	glyphHubVertex = '◆'
	glyphStar      = '˙'
	glyphBright    = '✦'
)

// markerFrames animate the satellite's self-rotation.
var markerFrames = []rune{'◐', '◓', '◑', '◒'}

// Palette
const (
	colorOrbit      = "60"
	colorStar       = "238"
	colorStarBright = "250"
	colorHub        = "#7B2CBF"
	colorHubVertex  = "#9D4EDD"
	colorMarker     = "#d0c8ff"
	colorBorder     = "244"
	colorLabel      = "252"
	colorHighlight  = "#FFD166"
	colorHighlight2 = "229"
)

// Scene is everything one frame needs.
type Scene struct {
	Projector   pick.Projector
	Viewport    pick.Viewport
	System      *orbit.System
	Highlighted func(i int) bool
	Selected    string
}

// Renderer draws scenes. It keeps its canvas between frames.
type Renderer struct {
	Font   LabelFont
	Color  bool
	canvas *Canvas
	styles map[Class]lipgloss.Style
	hub    hubMesh
	stars  []star
}

// New returns a renderer using font. color disables styling when false.
func New(font LabelFont, color bool) *Renderer {
	return &Renderer{
		Font:   font,
		Color:  color,
		canvas: NewCanvas(0, 0),
		styles: defaultStyles(),
		hub:    newIcosahedron(hubRadius),
		stars:  sky(starCount, starShell),
	}
}

func defaultStyles() map[Class]lipgloss.Style {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return map[Class]lipgloss.Style{
		ClassStar:        fg(colorStar),
		ClassStarBright:  fg(colorStarBright),
		ClassOrbit:       fg(colorOrbit),
		ClassHub:         fg(colorHub),
		ClassHubVertex:   fg(colorHubVertex).Bold(true),
		ClassMarker:      fg(colorMarker),
		ClassMarkerHover: fg(colorHighlight).Bold(true),
		ClassBorder:      fg(colorBorder),
		ClassBorderHover: fg(colorHighlight),
		ClassLabel:       fg(colorLabel),
		ClassLabelHover:  fg(colorHighlight2).Bold(true),
	}
}

// Canvas exposes the last drawn canvas.
func (r *Renderer) Canvas() *Canvas { return r.canvas }

// Draw rasterizes the scene and returns the frame text.
func (r *Renderer) Draw(s Scene) string {
	vp := s.Viewport
	if w, h := r.canvas.Size(); w != vp.Width || h != vp.Height {
		r.canvas = NewCanvas(vp.Width, vp.Height)
	} else {
		r.canvas.Clear()
	}
	if !vp.Valid() {
		return ""
	}

	r.drawStars(s)
	if s.System != nil {
		r.drawOrbits(s)
	}
	r.drawHub(s)
	if s.System != nil {
		r.drawMarkers(s)
		r.drawLabels(s)
	}
	return r.encode()
}

func (r *Renderer) plotPoint(s Scene, p geom.Vec3, g rune, class Class) bool {
	return r.plotBiased(s, p, g, class, 0)
}

func (r *Renderer) plotBiased(s Scene, p geom.Vec3, g rune, class Class, bias float64) bool {
	x, y, depth, ok := s.Projector.Project(p)
	if !ok {
		return false
	}
	col, row := s.Viewport.Cell(x, y)
	return r.canvas.Plot(col, row, g, depth-bias, class)
}

// plotSegment samples a world-space segment densely enough to leave no gaps
// in cell space.
func (r *Renderer) plotSegment(s Scene, a, b geom.Vec3, g rune, class Class) {
	ax, ay, _, okA := s.Projector.Project(a)
	bx, by, _, okB := s.Projector.Project(b)
	steps := 8
	if okA && okB {
		c0, r0 := s.Viewport.Cell(ax, ay)
		c1, r1 := s.Viewport.Cell(bx, by)
		span := max(abs(c1-c0), abs(r1-r0))
		steps = min(span+1, maxRingSteps)
	}
	for i := 0; i <= steps; i++ {
		r.plotPoint(s, a.Lerp(b, float64(i)/float64(steps)), g, class)
	}
}

func (r *Renderer) drawStars(s Scene) {
	for _, st := range r.stars {
		if st.bright {
			r.plotPoint(s, st.pos, glyphBright, ClassStarBright)
		} else {
			r.plotPoint(s, st.pos, glyphStar, ClassStar)
		}
	}
}

func (r *Renderer) drawOrbits(s Scene) {
	for i := 0; i < s.System.Len(); i++ {
		n := int(s.System.At(i).OrbitRadius * ringSamples)
		ring := s.System.OrbitPath(i, min(max(n, 32), maxRingSteps))
		for _, p := range ring {
			r.plotPoint(s, p, glyphOrbit, ClassOrbit)
		}
	}
}

func (r *Renderer) drawHub(s Scene) {
	spin := 0.0
	if s.System != nil {
		spin = s.System.HubSpin()
	}
	verts := r.hub.transformed(spin, hubTilt)
	for _, e := range r.hub.edges {
		r.plotSegment(s, verts[e[0]], verts[e[1]], glyphHubEdge, ClassHub)
	}
	for _, v := range verts {
		r.plotBiased(s, v, glyphHubVertex, ClassHubVertex, markerBias)
	}
}

func (r *Renderer) highlighted(s Scene, i int) bool {
	if s.Highlighted != nil && s.Highlighted(i) {
		return true
	}
	return s.Selected != "" && s.System.At(i).ID == s.Selected
}

func (r *Renderer) drawMarkers(s Scene) {
	for i := 0; i < s.System.Len(); i++ {
		sat := s.System.At(i)
		frame := int(math.Floor(sat.Spin/(math.Pi/2))) % len(markerFrames)
		if frame < 0 {
			frame += len(markerFrames)
		}
		class := ClassMarker
		if r.highlighted(s, i) {
			class = ClassMarkerHover
		}
		r.plotBiased(s, sat.Position, markerFrames[frame], class, markerBias)
	}
}

type labelDraw struct {
	index int
	col   int
	row   int
	depth float64
}

// drawLabels overlays label boxes far to near so nearer labels win.
func (r *Renderer) drawLabels(s Scene) {
	var draws []labelDraw
	for i := 0; i < s.System.Len(); i++ {
		sat := s.System.At(i)
		x, y, depth, ok := s.Projector.Project(sat.LabelCenter)
		if !ok {
			continue
		}
		col, row := s.Viewport.Cell(x, y)
		draws = append(draws, labelDraw{index: i, col: col, row: row, depth: depth})
	}
	sort.SliceStable(draws, func(a, b int) bool { return draws[a].depth > draws[b].depth })

	for _, d := range draws {
		sat := s.System.At(d.index)
		hot := r.highlighted(s, d.index)
		r.drawLabelBox(sat.Label, d.col, d.row, hot)
	}
}

func (r *Renderer) drawLabelBox(text string, col, row int, hot bool) {
	w, h := pick.LabelSize(text)
	left := col - w/2
	top := row - h/2
	border, label := ClassBorder, ClassLabel
	if hot {
		border, label = ClassBorderHover, ClassLabelHover
	}
	f := r.Font

	r.canvas.Overlay(left, top, f.TopLeft, border)
	r.canvas.Overlay(left+w-1, top, f.TopRight, border)
	r.canvas.Overlay(left, top+2, f.BottomLeft, border)
	r.canvas.Overlay(left+w-1, top+2, f.BottomRight, border)
	for x := left + 1; x < left+w-1; x++ {
		r.canvas.Overlay(x, top, f.Horizontal, border)
		r.canvas.Overlay(x, top+2, f.Horizontal, border)
		r.canvas.Overlay(x, top+1, ' ', label)
	}
	r.canvas.Overlay(left, top+1, f.Vertical, border)
	r.canvas.Overlay(left+w-1, top+1, f.Vertical, border)

	x := left + 2
	for _, ch := range text {
		r.canvas.Overlay(x, top+1, ch, label)
		x += max(lipgloss.Width(string(ch)), 1)
	}
}

// encode renders the canvas, styling runs of equal class together.
func (r *Renderer) encode() string {
	w, h := r.canvas.Size()
	var b strings.Builder
	for row := 0; row < h; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		if !r.Color {
			b.WriteString(r.canvas.Row(row))
			continue
		}
		var run []rune
		runClass := ClassEmpty
		flush := func() {
			if len(run) == 0 {
				return
			}
			if st, ok := r.styles[runClass]; ok {
				b.WriteString(st.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			run = run[:0]
		}
		for col := 0; col < w; col++ {
			ch, class := r.canvas.At(col, row)
			if class != runClass {
				flush()
				runClass = class
			}
			run = append(run, ch)
		}
		flush()
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
