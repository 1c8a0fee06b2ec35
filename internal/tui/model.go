package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/rs/zerolog"

	"github.com/hay-kot/alertkit/internal/alert"
	"github.com/hay-kot/alertkit/internal/core/config"
	"github.com/hay-kot/alertkit/internal/core/dom"
)

// Options configures the TUI.
type Options struct {
	// Background is plain text drawn behind the modal.
	Background string
	// Overrides are applied on top of the config for this modal only.
	Overrides map[string]any
	Logger    *zerolog.Logger
	// OnResolve is called once with the outcome, before the modal is removed.
	OnResolve func(alert.Resolution)
}

// Model is the Bubble Tea model hosting a single alert.
type Model struct {
	doc    *dom.Document
	ctrl   *alert.Controller
	sched  *teaScheduler
	hits   *HitMap
	md     *markdownCache
	keys   keyMap
	action alert.Action
	opts   Options

	width  int
	height int
	focus  int
	opened bool
	quit   bool
}

// New creates a TUI model that opens action when the program starts.
func New(cfg config.Config, action alert.Action, opts Options) Model {
	doc := dom.NewDocument()
	sched := &teaScheduler{}

	return Model{
		doc:   doc,
		sched: sched,
		ctrl: alert.New(doc, sched, cfg, alert.Options{
			Logger:    opts.Logger,
			OnResolve: opts.OnResolve,
		}),
		hits:   NewHitMap(),
		md:     &markdownCache{},
		keys:   defaultKeyMap(),
		action: action,
		opts:   opts,
		width:  80,
		height: 24,
	}
}

// Init opens the modal. A modal that cannot be opened ends the program.
func (m Model) Init() tea.Cmd {
	if !m.ctrl.Init(m.action, m.opts.Overrides) {
		return tea.Quit
	}
	return m.sched.Drain()
}

// Resolution returns the outcome once the modal has been dismissed.
func (m Model) Resolution() (alert.Resolution, bool) {
	return m.ctrl.LastResolution()
}

// Aborted reports whether the program ended without a resolution.
func (m Model) Aborted() bool {
	_, ok := m.ctrl.LastResolution()
	return !ok
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.ctrl.Phase() != alert.PhaseIdle {
		m.opened = true
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quit = true
			return m, tea.Quit
		}
		m = m.handleKey(msg)
	case tea.MouseMsg:
		m = m.handleMouse(msg)
	case taskDueMsg:
		m.sched.run(msg.task)
	}

	cmd := m.sched.Drain()

	if m.opened && m.ctrl.Phase() == alert.PhaseIdle {
		m.quit = true
		return m, tea.Batch(cmd, tea.Quit)
	}

	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) Model {
	buttons := m.buttons()

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.doc.DispatchKey(dom.KeyDown(msg.String(), dom.KeyCodeEscape))
	case key.Matches(msg, m.keys.Prev):
		if len(buttons) > 0 {
			m.focus = (m.focus - 1 + len(buttons)) % len(buttons)
		}
	case key.Matches(msg, m.keys.Next):
		if len(buttons) > 0 {
			m.focus = (m.focus + 1) % len(buttons)
		}
	case key.Matches(msg, m.keys.Confirm):
		if m.focus < len(buttons) {
			m.doc.Dispatch(dom.Click(buttons[m.focus]))
		}
	default:
		m.doc.DispatchKey(dom.KeyDown(msg.String(), 0))
	}

	return m
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	el := m.hits.Test(msg.X, msg.Y)
	if el == nil {
		return m
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.doc.Dispatch(dom.Click(el))
		}
	case tea.MouseActionMotion:
		for i, btn := range m.buttons() {
			if btn == el {
				m.focus = i
			}
		}
	}

	return m
}

func (m Model) buttons() []*dom.Element {
	if el := m.ctrl.Elements().Buttons; el != nil {
		return el.Children()
	}
	return nil
}

func (m Model) View() string {
	if m.quit {
		return ""
	}
	return m.render()
}
