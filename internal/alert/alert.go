// Package alert implements the modal alert controller: it builds a screen,
// window, message and buttons into a dom.Document, listens for input and
// resolves exactly one outcome per opened modal.
package alert

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/hay-kot/alertkit/internal/core/config"
	"github.com/hay-kot/alertkit/internal/core/dom"
	"github.com/hay-kot/alertkit/internal/core/schedule"
)

// Options configures a Controller.
type Options struct {
	Logger *zerolog.Logger
	// OnResolve is called after the action callback with the full resolution.
	OnResolve func(Resolution)
}

// Controller drives one modal at a time through its lifecycle:
// Idle -> Built -> Attached -> Resolving -> Detaching -> Idle.
// It must only be used from the goroutine that owns the document.
type Controller struct {
	doc       *dom.Document
	sched     schedule.Scheduler
	base      config.Config
	log       zerolog.Logger
	onResolve func(Resolution)

	phase       Phase
	cfg         config.Config
	act         Action
	elems       Elements
	target      *dom.Element
	values      []any
	escape      any
	buttonIndex map[*dom.Element]int
	keyReg      *dom.Registration
	elemRegs    []*dom.Registration
	toggleTask  schedule.Task
	last        *Resolution
}

// New creates an idle controller that builds into doc and defers work to
// sched.
func New(doc *dom.Document, sched schedule.Scheduler, cfg config.Config, opts Options) *Controller {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Controller{
		doc:       doc,
		sched:     sched,
		base:      cfg,
		log:       logger,
		onResolve: opts.OnResolve,
		phase:     PhaseIdle,
	}
}

// Setup merges overrides into the base configuration used by later calls to
// Init. Unknown keys are ignored.
func (c *Controller) Setup(overrides map[string]any) error {
	merged, err := c.base.Merge(overrides)
	if err != nil {
		return err
	}
	c.base = merged
	return nil
}

// Alert opens a modal with a single default button and no callback.
func (c *Controller) Alert(message string) bool {
	return c.Init(Action{Message: message}, nil)
}

// Init opens a modal for action, applying overrides on top of the base
// configuration for this modal only. It reports whether the modal opened. A
// modal without a message is not opened, and neither is one requested while
// another is still open.
func (c *Controller) Init(action Action, overrides map[string]any) bool {
	if action.Message == "" {
		c.log.Debug().Msg("alert has no message, not opening")
		return false
	}

	if c.phase != PhaseIdle {
		c.log.Warn().Stringer("phase", c.phase).Msg("alert already open, ignoring init")
		return false
	}

	cfg, err := c.base.Merge(overrides)
	if err != nil {
		c.log.Warn().Err(err).Msg("ignoring alert config overrides")
		cfg = c.base
	}

	c.cfg = cfg
	c.act = action
	c.last = nil

	c.build()
	c.attach()

	c.log.Debug().
		Int("buttons", len(c.values)).
		Interface("escape", c.escape).
		Msg("alert opened")

	return true
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Elements returns the elements of the open modal. All fields are nil when
// idle.
func (c *Controller) Elements() Elements {
	return c.elems
}

// Values returns the value table aligned with the rendered buttons.
func (c *Controller) Values() []any {
	return slices.Clone(c.values)
}

// EscapeValue returns the outcome of escape and background clicks.
func (c *Controller) EscapeValue() any {
	return c.escape
}

// Config returns the configuration of the open modal, or the base
// configuration when idle.
func (c *Controller) Config() config.Config {
	if c.phase == PhaseIdle {
		return c.base
	}
	return c.cfg
}

// LastResolution returns the outcome of the most recently resolved modal.
func (c *Controller) LastResolution() (Resolution, bool) {
	if c.last == nil {
		return Resolution{}, false
	}
	return *c.last, true
}
