package alert

import (
	"strconv"

	"github.com/hay-kot/alertkit/internal/core/config"
	"github.com/hay-kot/alertkit/internal/core/dom"
)

func (c *Controller) build() {
	c.elems = Elements{
		Screen:  c.section("div", c.cfg.Screen.Section),
		Window:  c.section("div", c.cfg.Window),
		Message: c.section("div", c.cfg.Message.Section),
		Buttons: c.section("div", c.cfg.Buttons),
	}

	c.elems.Message.SetText(c.act.Message)

	opts := c.act.Options
	if len(opts) == 0 {
		opts = []Option{{Label: c.cfg.Button.DefaultOk, Value: c.cfg.Values.DefaultOk}}
	}

	var width float64 // auto
	if c.cfg.Button.EqualWidths {
		width = 100 / float64(len(opts))
	}

	c.values = make([]any, 0, len(opts))
	c.buttonIndex = make(map[*dom.Element]int, len(opts))
	c.escape = c.cfg.Values.DefaultEsc

	for i, opt := range opts {
		btn := c.doc.CreateElement("button")
		btn.SetClass(c.cfg.Button.Class)
		btn.SetText(opt.Label)
		btn.SetAttr("value", strconv.Itoa(i))
		btn.SetWidth(width)

		c.elems.Buttons.AppendChild(btn)
		c.values = append(c.values, opt.Value)
		c.buttonIndex[btn] = i

		if opt.Escape {
			c.escape = opt.Value
		}
	}

	c.elems.Window.AppendChild(c.elems.Message)
	c.elems.Window.AppendChild(c.elems.Buttons)
	c.elems.Screen.AppendChild(c.elems.Window)

	c.phase = PhaseBuilt
}

func (c *Controller) section(tag string, sec config.Section) *dom.Element {
	el := c.doc.CreateElement(tag)
	if sec.Class != "" {
		el.SetClass(sec.Class)
	}
	if sec.ID != "" {
		el.SetID(sec.ID)
	}
	return el
}

func (c *Controller) attach() {
	c.target = c.resolveTarget()
	c.target.AppendChild(c.elems.Screen)

	for _, btn := range c.elems.Buttons.Children() {
		c.elemRegs = append(c.elemRegs, btn.AddEventListener(dom.EventClick, c.HandleEvent))
	}
	c.elemRegs = append(c.elemRegs, c.elems.Screen.AddEventListener(dom.EventClick, c.HandleEvent))
	c.keyReg = c.doc.AddKeyListener(c.HandleEvent)

	if toggle := c.cfg.Screen.ToggleClass; toggle != "" {
		screen := c.elems.Screen
		c.toggleTask = c.sched.After(0, func() {
			screen.AddClass(toggle)
		})
	}

	c.phase = PhaseAttached
}

func (c *Controller) resolveTarget() *dom.Element {
	if c.cfg.Target == "" || c.cfg.Target == config.TargetBody {
		return c.doc.Body
	}

	if el := c.doc.GetElementByID(c.cfg.Target); el != nil {
		return el
	}

	c.log.Warn().Str("target", c.cfg.Target).Msg("alert target not found, using body")
	return c.doc.Body
}
