// Package tui is the terminal front end for a slide switch.
package tui

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alkime/slideswitch/internal/state"
	"github.com/alkime/slideswitch/internal/tui/components/switchview"
	"github.com/alkime/slideswitch/internal/tui/style"
	"github.com/alkime/slideswitch/pkg/slideswitch"
	"github.com/alkime/slideswitch/pkg/uictl"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// switch position on screen, below the title
	originX = 2
	originY = 2

	maxEvents = 5

	// rows used below the switch
	footerRows = 6
)

// Config holds everything the TUI needs.
type Config struct {
	Switch *slideswitch.Switch
	// Store receives the switch state on quit. Optional.
	Store *state.Store
	// Listener is notified alongside the on-screen event log. Optional.
	Listener slideswitch.Listener
	Logger   *slog.Logger
	Cancel   context.CancelFunc
}

// eventLog keeps the most recent transitions for display.
type eventLog struct {
	entries []string
}

func (l *eventLog) Open()  { l.add("open") }
func (l *eventLog) Close() { l.add("close") }

func (l *eventLog) add(e string) {
	l.entries = append(l.entries, e)
	if len(l.entries) > maxEvents {
		l.entries = l.entries[len(l.entries)-maxEvents:]
	}
}

type model struct {
	config Config
	keys   KeyMap
	view   switchview.Model
	events *eventLog

	knob  uictl.Knob
	thumb uictl.CappedDial[int]
}

// New creates the TUI model. It takes over the switch's listener.
func New(config Config) tea.Model {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	events := &eventLog{}

	listeners := slideswitch.Listeners{events}
	if config.Listener != nil {
		listeners = append(listeners, config.Listener)
	}

	config.Switch.SetListener(listeners)

	return &model{
		config: config,
		keys:   DefaultKeyMap(),
		view:   switchview.New(config.Switch).SetOrigin(originX, originY),
		events: events,
		knob:   config.Switch,
		thumb:  config.Switch.Position(),
	}
}

// Init returns the initial command.
func (m *model) Init() tea.Cmd {
	return m.view.Init()
}

// Update handles all messages.
func (m *model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	sw := m.config.Switch

	switch msg := teaMsg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ForceQuit):
			return m, m.quit(false)

		case key.Matches(msg, m.keys.Quit):
			return m, m.quit(true)

		case key.Matches(msg, m.keys.Tap):
			m.view, cmd = m.view.Tap()
			return m, cmd

		case key.Matches(msg, m.keys.Open):
			m.knob.On()

		case key.Matches(msg, m.keys.Close):
			m.knob.Off()

		case key.Matches(msg, m.keys.Shape):
			if sw.Shape() == slideswitch.ShapeRect {
				sw.SetShape(slideswitch.ShapeCircle)
			} else {
				sw.SetShape(slideswitch.ShapeRect)
			}

		case key.Matches(msg, m.keys.Slideable):
			sw.SetSlideable(!sw.Slideable())
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.view, cmd = m.view.Update(tea.WindowSizeMsg{
			Width:  msg.Width,
			Height: max(msg.Height-footerRows, originY+1),
		})

		return m, cmd
	}

	// Delegate mouse input and animation frames
	m.view, cmd = m.view.Update(teaMsg)

	return m, cmd
}

func (m *model) quit(save bool) tea.Cmd {
	if save && m.config.Store != nil {
		if err := m.save(); err != nil {
			m.config.Logger.Error("failed to save switch state", "error", err)
		}
	}

	if m.config.Cancel != nil {
		m.config.Cancel()
	}

	return tea.Quit
}

func (m *model) save() error {
	saved, err := SaveState(m.config.Switch)
	if err != nil {
		return err
	}

	if err := m.config.Store.Save(saved); err != nil {
		return err
	}

	m.config.Logger.Info("saved switch state", "path", m.config.Store.Path(), "open", saved.IsOpen)

	return nil
}

// View renders the current UI.
func (m *model) View() string {
	var sb strings.Builder

	sw := m.config.Switch

	sb.WriteString(style.Title.Render("Slide Switch"))
	sb.WriteString("\n\n")

	indent := strings.Repeat(" ", originX)
	for _, line := range strings.Split(m.view.View(), "\n") {
		sb.WriteString(indent + line + "\n")
	}

	sb.WriteString("\n")

	sb.WriteString(style.Label.Render("State: "))
	if m.knob.Read() {
		sb.WriteString(style.Open.Render("open"))
	} else {
		sb.WriteString(style.Closed.Render("closed"))
	}

	pos, limit := m.thumb.Cap()
	sb.WriteString(style.Muted.Render("  phase: " + sw.Phase().String() +
		"  shape: " + sw.Shape().String() +
		"  thumb: " + strconv.Itoa(pos) + "/" + strconv.Itoa(limit)))

	if !sw.Slideable() {
		sb.WriteString(style.Warning.Render("  locked"))
	}

	sb.WriteString("\n")

	if len(m.events.entries) > 0 {
		sb.WriteString(style.Label.Render("Recent: "))
		sb.WriteString(style.Subtitle.Render(strings.Join(m.events.entries, ", ")))
	}

	sb.WriteString("\n\n")
	sb.WriteString(renderHelp(m.keys.ShortHelp()))

	return sb.String()
}

func renderKeyHelp(keyBinding key.Binding) string {
	return style.Help.Render("[") + style.Key.Render(keyBinding.Help().Key) +
		style.Help.Render("] ") +
		style.Help.Render(keyBinding.Help().Desc)
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, renderKeyHelp(b))
	}

	return strings.Join(parts, " ")
}
