package alert

import (
	"github.com/hay-kot/alertkit/internal/core/dom"
)

// HandleEvent is the listener registered on the buttons, the screen and the
// document keydown stream. Only the first qualifying event of an attached
// modal resolves it; every later event is ignored.
func (c *Controller) HandleEvent(ev *dom.Event) {
	if c.phase != PhaseAttached {
		return
	}

	ev.StopPropagation()

	res, ok := c.classify(ev)
	if !ok {
		return
	}

	c.resolve(res)
}

func (c *Controller) classify(ev *dom.Event) (Resolution, bool) {
	switch ev.Type {
	case dom.EventKeyDown:
		if ev.KeyCode == dom.KeyCodeEscape {
			return Resolution{Value: c.escape, Cause: CauseEscapeKey, Index: -1}, true
		}
	case dom.EventClick:
		if ev.Target == c.elems.Screen {
			return Resolution{Value: c.escape, Cause: CauseScreen, Index: -1}, true
		}
		if idx, ok := c.buttonFor(ev.Target); ok {
			return Resolution{Value: c.values[idx], Cause: CauseButton, Index: idx}, true
		}
		c.log.Debug().Msg("click outside buttons and screen, ignoring")
	default:
		c.log.Debug().Str("type", ev.Type).Msg("unhandled event type")
	}

	return Resolution{}, false
}

// buttonFor finds the button containing el, stopping at the screen.
func (c *Controller) buttonFor(el *dom.Element) (int, bool) {
	for ; el != nil && el != c.elems.Screen; el = el.Parent() {
		if idx, ok := c.buttonIndex[el]; ok {
			return idx, true
		}
	}
	return 0, false
}

func (c *Controller) resolve(res Resolution) {
	c.phase = PhaseResolving
	c.last = &res

	c.log.Debug().
		Stringer("cause", res.Cause).
		Int("index", res.Index).
		Interface("value", res.Value).
		Msg("alert resolved")

	if c.act.Callback != nil {
		c.act.Callback(res.Value)
	}
	if c.onResolve != nil {
		c.onResolve(res)
	}

	c.detach()
}

// detach starts the exit transition and schedules removal. There is no abort
// path: once scheduled, removal always completes.
func (c *Controller) detach() {
	c.phase = PhaseDetaching

	if c.toggleTask != nil {
		c.toggleTask.Cancel()
	}
	if toggle := c.cfg.Screen.ToggleClass; toggle != "" {
		c.elems.Screen.RemoveClass(toggle)
	}

	c.sched.After(c.cfg.DismissDelayDuration(), c.remove)
}

func (c *Controller) remove() {
	if parent := c.elems.Screen.Parent(); parent != nil {
		parent.RemoveChild(c.elems.Screen)
	}

	c.keyReg.Release()
	for _, reg := range c.elemRegs {
		reg.Release()
	}

	c.act = Action{}
	c.elems = Elements{}
	c.target = nil
	c.values = nil
	c.escape = nil
	c.buttonIndex = nil
	c.keyReg = nil
	c.elemRegs = nil
	c.toggleTask = nil

	c.phase = PhaseIdle
	c.log.Debug().Msg("alert removed")
}
