// Package switchview renders a slide switch in the terminal and feeds it
// mouse input.
package switchview

import (
	"image"
	"strings"

	"github.com/alkime/slideswitch/pkg/slideswitch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Size of one terminal cell in switch units. Cells are roughly twice as
// tall as they are wide.
const (
	CellWidth  = 10
	CellHeight = 20
)

// thumbGlyph marks cells covered by the thumb so it stays visible without color.
const thumbGlyph = "█"

// FrameMsg wakes the component when the switch has an animation frame.
type FrameMsg struct{}

// Model is a Bubble Tea component wrapping a Switch. The Switch is owned by
// the Bubble Tea update loop; animation frames are drained in Update.
type Model struct {
	sw      *slideswitch.Switch
	origin  image.Point
	waiting bool
}

// New creates a component for sw.
func New(sw *slideswitch.Switch) Model {
	return Model{sw: sw}
}

// Switch returns the wrapped switch.
func (m Model) Switch() *slideswitch.Switch {
	return m.sw
}

// SetOrigin records where the component's top-left cell is drawn so mouse
// coordinates can be translated.
func (m Model) SetOrigin(x, y int) Model {
	m.origin = image.Pt(x, y)
	return m
}

// Cells returns the component size in terminal cells.
func (m Model) Cells() (cols, rows int) {
	d := m.sw.Dimensions()
	return ceilDiv(d.Width, CellWidth), ceilDiv(d.Height, CellHeight)
}

// Init does nothing; the switch is idle until it receives input.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles mouse input, layout and animation frames.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.sw.Layout(slideswitch.Measure(m.sw.Shape(),
			slideswitch.MeasureSpec{Mode: slideswitch.MeasureAtMost, Size: max(msg.Width-m.origin.X, 1) * CellWidth},
			slideswitch.MeasureSpec{Mode: slideswitch.MeasureAtMost, Size: max(msg.Height-m.origin.Y, 1) * CellHeight},
		))

	case tea.MouseMsg:
		m.handleMouse(msg)

	case FrameMsg:
		m.waiting = false
		m.sw.Drain()
	}

	return m.watch()
}

// Tap toggles the switch as a click would, with animation.
func (m Model) Tap() (Model, tea.Cmd) {
	m.sw.Tap()
	return m.watch()
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft {
		return
	}

	x := (msg.X-m.origin.X)*CellWidth + CellWidth/2

	switch msg.Action {
	case tea.MouseActionPress:
		if m.inside(msg.X, msg.Y) {
			m.sw.PointerDown(x)
		}
	case tea.MouseActionMotion:
		m.sw.PointerMove(x)
	case tea.MouseActionRelease:
		m.sw.PointerUp(x)
	}
}

func (m Model) inside(x, y int) bool {
	cols, rows := m.Cells()
	return image.Pt(x, y).In(image.Rect(m.origin.X, m.origin.Y, m.origin.X+cols, m.origin.Y+rows))
}

// watch keeps exactly one command waiting for frames while the switch settles.
func (m Model) watch() (Model, tea.Cmd) {
	if m.waiting || !m.sw.Settling() {
		return m, nil
	}

	m.waiting = true
	wake, done := m.sw.Wake(), m.sw.Done()

	return m, func() tea.Msg {
		select {
		case <-wake:
			return FrameMsg{}
		case <-done:
			return nil
		}
	}
}

// View rasterises the switch's draw instructions, one sample per cell.
func (m Model) View() string {
	ops := m.sw.Paint()
	if len(ops) == 0 {
		return ""
	}

	cols, rows := m.Cells()
	lines := make([]string, 0, rows)

	for row := range rows {
		var sb strings.Builder

		var (
			runColor colorful.Color
			runThumb bool
			runLen   int
		)

		flush := func() {
			if runLen == 0 {
				return
			}
			sb.WriteString(renderRun(runColor, runThumb, runLen))
			runLen = 0
		}

		for col := range cols {
			pt := image.Pt(col*CellWidth+CellWidth/2, row*CellHeight+CellHeight/2)
			c, thumb := sample(ops, pt)

			if runLen > 0 && (c != runColor || thumb != runThumb) {
				flush()
			}

			runColor, runThumb = c, thumb
			runLen++
		}

		flush()
		lines = append(lines, sb.String())
	}

	return strings.Join(lines, "\n")
}

// sample composites the ops covering pt in paint order. It reports whether
// the last op (the thumb) is on top.
func sample(ops []slideswitch.DrawOp, pt image.Point) (colorful.Color, bool) {
	var (
		c      colorful.Color
		thumb  bool
		filled bool
	)

	for i, op := range ops {
		if !op.Contains(pt) {
			continue
		}

		c = c.BlendRgb(op.Color, float64(op.Alpha)/255).Clamped()
		filled = true
		thumb = i == len(ops)-1
	}

	if !filled {
		return colorful.Color{R: -1}, false
	}

	return c, thumb
}

func renderRun(c colorful.Color, thumb bool, n int) string {
	// uncovered cells (round corners) stay transparent
	if c.R < 0 {
		return strings.Repeat(" ", n)
	}

	if thumb {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Hex())).
			Render(strings.Repeat(thumbGlyph, n))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Render(strings.Repeat(" ", n))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
