// Package ui hosts the orbital navigation widget in a Bubble Tea program.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/orbitnav/internal/camera"
	"github.com/litescript/orbitnav/internal/logging"
	"github.com/litescript/orbitnav/internal/orbit"
	"github.com/litescript/orbitnav/internal/pick"
	"github.com/litescript/orbitnav/internal/scene"
	"github.com/litescript/orbitnav/internal/version"
	"github.com/litescript/orbitnav/internal/zoom"
)

// Layout
const (
	headerHeight = 2
	footerHeight = 1

	// wheelNotch scales one terminal wheel step to a trackpad-sized delta.
	wheelNotch = 3.0
)

// Msg types for Bubble Tea
type (
	// FrameMsg drives one widget tick.
	FrameMsg time.Time

	// ZoomChangedMsg reports that a zoom transition finished.
	ZoomChangedMsg struct {
		Zoomed bool
	}

	// CategorySelectedMsg reports the category the camera arrived at.
	CategorySelectedMsg struct {
		ID string
	}
)

// Options configures the host.
type Options struct {
	Categories    []orbit.Category
	Scene         scene.Options
	FrameInterval time.Duration
	Details       map[string]string
	Logger        *logging.Logger
	Clock         func() time.Time
}

// inbox collects widget notifications raised during a tick. It is shared by
// every copy of the model.
type inbox struct {
	msgs []tea.Msg
}

func (b *inbox) ZoomStateChanged(zoomed bool) {
	b.msgs = append(b.msgs, ZoomChangedMsg{Zoomed: zoomed})
}

func (b *inbox) CategorySelected(id string) {
	b.msgs = append(b.msgs, CategorySelectedMsg{ID: id})
}

func (b *inbox) drain() []tea.Msg {
	msgs := b.msgs
	b.msgs = nil
	return msgs
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	opts   Options
	log    *logging.Logger
	now    func() time.Time
	inbox  *inbox
	widget *scene.Widget

	// UI state
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int
	zoomed    bool
	selected  string

	// Sub-models
	panel PanelModel
}

// New creates a new root UI model. The widget is built once the terminal
// size is known.
func New(opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 30
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	labels := make(map[string]string, len(opts.Categories))
	for _, c := range opts.Categories {
		labels[c.ID] = c.Label
	}
	return Model{
		opts:  opts,
		log:   log.With("ui"),
		now:   opts.Clock,
		inbox: &inbox{},
		panel: NewPanelModel(labels, opts.Details),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.frameCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()

	case FrameMsg:
		m.animTick++
		if m.widget == nil {
			cmds = append(cmds, m.frameCmd())
			break
		}
		if m.widget.Tick(time.Time(msg)) {
			cmds = append(cmds, m.frameCmd())
		}
		for _, n := range m.inbox.drain() {
			next, cmd := m.Update(n)
			m = next.(Model)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	case ZoomChangedMsg:
		m.zoomed = msg.Zoomed
		if !msg.Zoomed {
			m.selected = ""
			m.panel = m.panel.Hide()
		}

	case CategorySelectedMsg:
		m.selected = msg.ID
		m.panel = m.panel.Show(msg.ID)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.Dispose()
		return tea.Quit
	}
	if m.widget == nil {
		return nil
	}

	now := m.now()
	switch msg.String() {
	case "esc", "backspace":
		if err := m.widget.Back(now); err != nil && !errors.Is(err, zoom.ErrNotZoomed) {
			m.statusMsg = err.Error()
		}
	case "r":
		if m.widget.ResetCamera() {
			m.statusMsg = "camera reset"
		}
	case "tab":
		m.focus(1)
	case "shift+tab":
		m.focus(-1)
	case "enter", " ":
		if err := m.widget.SelectFocused(now); err != nil {
			m.statusMsg = describe(err)
		} else {
			m.statusMsg = ""
		}
	case "left", "h":
		m.widget.Wheel(camera.WheelEvent{DX: -wheelNotch}, now)
	case "right", "l":
		m.widget.Wheel(camera.WheelEvent{DX: wheelNotch}, now)
	case "up", "k":
		m.widget.Wheel(camera.WheelEvent{DY: -wheelNotch}, now)
	case "down", "j":
		m.widget.Wheel(camera.WheelEvent{DY: wheelNotch}, now)
	}
	return nil
}

func (m *Model) focus(delta int) {
	id := m.widget.Focus(delta)
	m.statusMsg = "focus: " + m.panel.Label(id)
}

func describe(err error) string {
	switch {
	case errors.Is(err, zoom.ErrBusy):
		return "busy: wait for the camera to settle"
	case errors.Is(err, scene.ErrNothingFocused):
		return "nothing focused: tab to pick a category"
	default:
		return err.Error()
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.widget == nil {
		return
	}
	now := m.now()
	col, row := msg.X, msg.Y-headerHeight
	vp := m.widget.Viewport()
	inside := col >= 0 && col < vp.Width && row >= 0 && row < vp.Height

	if e, ok := wheelEvent(msg); ok {
		if inside {
			m.widget.Wheel(e, now)
		}
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if inside && msg.Button == tea.MouseButtonLeft {
			m.widget.PointerDown(col, row, now)
		}
	case tea.MouseActionRelease:
		if m.widget.PointerUp(col, row, now) {
			m.statusMsg = ""
		}
	case tea.MouseActionMotion:
		if !inside && !m.widget.Dragging() {
			m.widget.PointerLeave()
			return
		}
		m.widget.PointerMove(col, row, now)
	}
}

// wheelEvent converts a wheel button press into a camera gesture.
func wheelEvent(msg tea.MouseMsg) (camera.WheelEvent, bool) {
	e := camera.WheelEvent{Shift: msg.Shift, Ctrl: msg.Ctrl}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		e.DY = -wheelNotch
	case tea.MouseButtonWheelDown:
		e.DY = wheelNotch
	case tea.MouseButtonWheelLeft:
		e.DX = -wheelNotch
	case tea.MouseButtonWheelRight:
		e.DX = wheelNotch
	default:
		return e, false
	}
	return e, true
}

// layout sizes the widget to the content area, building it on first use.
func (m *Model) layout() {
	w, h := m.width, m.height-headerHeight-footerHeight
	m.panel = m.panel.SetSize(w, h)
	if m.widget != nil {
		m.widget.Resize(w, h)
		return
	}

	opts := m.opts.Scene
	opts.Width, opts.Height = w, h
	opts.Listener = m.inbox
	if opts.Logger == nil {
		opts.Logger = m.opts.Logger
	}
	widget, err := scene.New(m.opts.Categories, opts)
	if err != nil {
		m.statusMsg = fmt.Sprintf("cannot draw: %v", err)
		m.log.Warn("widget setup: %v", err)
		return
	}
	m.widget = widget
	m.statusMsg = ""
}

// Dispose releases the widget. Safe to call more than once.
func (m *Model) Dispose() {
	if m.widget != nil {
		m.widget.Dispose()
	}
}

// Widget returns the hosted widget, or nil before the first resize.
func (m Model) Widget() *scene.Widget { return m.widget }

// Zoomed reports whether the camera is parked at a category.
func (m Model) Zoomed() bool { return m.zoomed }

// Selected returns the category the camera is parked at.
func (m Model) Selected() string { return m.selected }

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.widget == nil {
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
		return m.renderHeader() + "\n" + dim.Render("  "+m.statusMsg)
	}

	content := m.widget.Frame()
	if m.panel.Visible() {
		col, row := m.panel.Anchor()
		content = overlay(content, m.panel.View(), col, row)
	}
	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

const title = "◉ O R B I T N A V"

func (m Model) renderHeader() string {
	var b strings.Builder
	runes := []rune(title)
	b.WriteString("  ")
	for col, r := range runes {
		color := titleColor(col, len(runes))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(string(r)))
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("   v%s", version.Version)))
	b.WriteString("\n")
	b.WriteString(muted.Render("  " + m.renderBreadcrumb()))
	return b.String()
}

func (m Model) renderBreadcrumb() string {
	if m.widget == nil {
		return "orbit"
	}
	state := m.widget.ZoomState()
	switch state {
	case zoom.Idle:
		return "orbit"
	case zoom.Zoomed:
		return "orbit › " + m.panel.Label(m.selected)
	default:
		return fmt.Sprintf("orbit › %s (%s)", m.panel.Label(m.widget.Selected()), state)
	}
}

// titleStops runs the logo from the hub's purple to the hover gold.
var titleStops = []string{"#7B2CBF", "#9D4EDD", "#D0C8FF", "#FFD166"}

// titleColor returns the logo color for rune i of n, blended in Lab space
// between neighboring stops.
func titleColor(i, n int) string {
	last := len(titleStops) - 1
	if n <= 1 || i <= 0 {
		return titleStops[0]
	}
	if i >= n-1 {
		return titleStops[last]
	}
	pos := float64(i) / float64(n-1) * float64(last)
	k := int(pos)
	t := pos - float64(k)
	if t == 0 {
		return titleStops[k]
	}
	a, errA := colorful.Hex(titleStops[k])
	b, errB := colorful.Hex(titleStops[k+1])
	if errA != nil || errB != nil {
		return titleStops[k]
	}
	return a.BlendLab(b, t).Clamped().Hex()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
	hotStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166")).Bold(true)

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.statusMsg != "":
		status = dimStyle.Render(m.statusMsg)
	case m.widget.Cursor() == pick.CursorPointer:
		id, _ := m.widget.Hovered()
		status = hotStyle.Render("▸ "+m.panel.Label(id)) + dimStyle.Render(" click to open")
	case m.widget.ZoomState() == zoom.ZoomingIn || m.widget.ZoomState() == zoom.ZoomingOut:
		status = accentStyle.Render(spinner) + dimStyle.Render(" "+m.widget.ZoomState().String())
	case m.widget.Dragging():
		status = accentStyle.Render("✥") + dimStyle.Render(" orbiting")
	default:
		status = accentStyle.Render("·") + dimStyle.Render(" drag to orbit")
	}

	var help string
	if m.zoomed {
		help = "esc: back | q: quit"
	} else {
		help = "drag/wheel: spin | tab: focus | enter: open | r: reset | q: quit"
	}
	return "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.opts.FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
