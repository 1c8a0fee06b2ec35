package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/alertkit/internal/core/config"
	"github.com/hay-kot/alertkit/internal/core/dom"
	"github.com/hay-kot/alertkit/internal/core/schedule"
)

type harness struct {
	doc   *dom.Document
	sched *schedule.Manual
	ctrl  *Controller
	calls []any
}

func newHarness(t *testing.T, cfg config.Config) *harness {
	t.Helper()

	h := &harness{
		doc:   dom.NewDocument(),
		sched: schedule.NewManual(),
	}
	h.ctrl = New(h.doc, h.sched, cfg, Options{})
	return h
}

func (h *harness) callback(v any) {
	h.calls = append(h.calls, v)
}

func (h *harness) open(t *testing.T, message string, opts ...Option) {
	t.Helper()
	require.True(t, h.ctrl.Init(Action{Message: message, Callback: h.callback, Options: opts}, nil))
}

func (h *harness) buttons() []*dom.Element {
	return h.ctrl.Elements().Buttons.Children()
}

func (h *harness) pressEscape() {
	h.doc.DispatchKey(dom.KeyDown("esc", dom.KeyCodeEscape))
}

func deleteOptions() []Option {
	return []Option{
		{Label: "keep", Value: false},
		{Label: "remove", Value: true, Escape: true},
	}
}

func TestBuild_RendersOneButtonPerOption(t *testing.T) {
	for n := 1; n <= 5; n++ {
		h := newHarness(t, config.Default())

		opts := make([]Option, n)
		for i := range opts {
			opts[i] = Option{Label: string(rune('a' + i)), Value: i}
		}
		h.open(t, "pick one", opts...)

		btns := h.buttons()
		require.Len(t, btns, n)
		values := h.ctrl.Values()
		require.Len(t, values, n)

		for i, btn := range btns {
			assert.Equal(t, opts[i].Label, btn.Text())
			assert.Equal(t, i, values[i])
			ord, ok := btn.Attr("value")
			assert.True(t, ok)
			assert.Equal(t, string(rune('0'+i)), ord)
			assert.InDelta(t, 100/float64(n), btn.Width(), 0.0001)
			assert.True(t, btn.HasClass("alert-btn"))
		}
	}
}

func TestBuild_DefaultButton(t *testing.T) {
	h := newHarness(t, config.Default())
	h.open(t, "Hi")

	btns := h.buttons()
	require.Len(t, btns, 1)
	assert.Equal(t, "okay", btns[0].Text())
	assert.Equal(t, []any{true}, h.ctrl.Values())
	assert.Equal(t, false, h.ctrl.EscapeValue())
	assert.InDelta(t, 100.0, btns[0].Width(), 0.0001)
}

func TestBuild_AutoWidths(t *testing.T) {
	cfg := config.Default()
	cfg.Button.EqualWidths = false

	h := newHarness(t, cfg)
	h.open(t, "Hi", Option{Label: "a"}, Option{Label: "b"})

	for _, btn := range h.buttons() {
		assert.Zero(t, btn.Width())
	}
}

func TestBuild_Structure(t *testing.T) {
	cfg := config.Default()
	cfg.Screen.ID = "scr"

	h := newHarness(t, cfg)
	h.open(t, "<b>Delete?</b>")

	el := h.ctrl.Elements()
	assert.Same(t, h.doc.Body, el.Screen.Parent())
	assert.Same(t, el.Screen, el.Window.Parent())
	assert.Equal(t, []*dom.Element{el.Message, el.Buttons}, el.Window.Children())
	assert.Equal(t, "<b>Delete?</b>", el.Message.Text(), "message is inserted verbatim")
	assert.Same(t, el.Screen, h.doc.GetElementByID("scr"))
	assert.Equal(t, "alert-scr", el.Screen.Class())
	assert.Equal(t, "alert-win", el.Window.Class())
	assert.Equal(t, "alert-msg", el.Message.Class())
	assert.Equal(t, "alert-btns-wrap", el.Buttons.Class())
	assert.Equal(t, PhaseAttached, h.ctrl.Phase())
}

func TestEscapeValue(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want any
	}{
		{
			name: "no flag uses default",
			opts: []Option{{Label: "a", Value: 1}, {Label: "b", Value: 2}},
			want: false,
		},
		{
			name: "flagged first option",
			opts: []Option{{Label: "a", Value: 1, Escape: true}, {Label: "b", Value: 2}},
			want: 1,
		},
		{
			name: "flagged last option",
			opts: []Option{{Label: "a", Value: 1}, {Label: "b", Value: 2, Escape: true}},
			want: 2,
		},
		{
			name: "no options uses default",
			opts: nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, config.Default())
			h.open(t, "msg", tt.opts...)

			assert.Equal(t, tt.want, h.ctrl.EscapeValue())

			h.pressEscape()
			assert.Equal(t, []any{tt.want}, h.calls)
		})
	}
}

func TestResolve_DeleteScenario(t *testing.T) {
	tests := []struct {
		name    string
		trigger func(h *harness)
		want    any
		cause   Cause
		index   int
	}{
		{
			name:    "click keep",
			trigger: func(h *harness) { h.doc.Dispatch(dom.Click(h.buttons()[0])) },
			want:    false,
			cause:   CauseButton,
			index:   0,
		},
		{
			name:    "click remove",
			trigger: func(h *harness) { h.doc.Dispatch(dom.Click(h.buttons()[1])) },
			want:    true,
			cause:   CauseButton,
			index:   1,
		},
		{
			name:    "escape key",
			trigger: func(h *harness) { h.pressEscape() },
			want:    true,
			cause:   CauseEscapeKey,
			index:   -1,
		},
		{
			name:    "background click",
			trigger: func(h *harness) { h.doc.Dispatch(dom.Click(h.ctrl.Elements().Screen)) },
			want:    true,
			cause:   CauseScreen,
			index:   -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, config.Default())
			h.open(t, "Delete?", deleteOptions()...)

			tt.trigger(h)

			assert.Equal(t, []any{tt.want}, h.calls)
			res, ok := h.ctrl.LastResolution()
			require.True(t, ok)
			assert.Equal(t, Resolution{Value: tt.want, Cause: tt.cause, Index: tt.index}, res)
		})
	}
}

func TestResolve_DefaultScenario(t *testing.T) {
	t.Run("click", func(t *testing.T) {
		h := newHarness(t, config.Default())
		h.open(t, "Hi")

		h.doc.Dispatch(dom.Click(h.buttons()[0]))
		assert.Equal(t, []any{true}, h.calls)
	})

	t.Run("escape", func(t *testing.T) {
		h := newHarness(t, config.Default())
		h.open(t, "Hi")

		h.pressEscape()
		assert.Equal(t, []any{false}, h.calls)
	})
}

func TestResolve_IgnoredInputs(t *testing.T) {
	h := newHarness(t, config.Default())
	h.open(t, "Delete?", deleteOptions()...)
	el := h.ctrl.Elements()

	for _, target := range []*dom.Element{el.Window, el.Message, el.Buttons} {
		ev := dom.Click(target)
		h.doc.Dispatch(ev)
		assert.True(t, ev.Stopped(), "events reaching the modal are consumed")
	}

	h.doc.DispatchKey(dom.KeyDown("enter", 13))

	unrelated := h.doc.CreateElement("div")
	h.doc.Body.AppendChild(unrelated)
	h.doc.Dispatch(dom.Click(unrelated))

	assert.Empty(t, h.calls)
	assert.Equal(t, PhaseAttached, h.ctrl.Phase())
}

func TestResolve_ClickOnButtonDescendant(t *testing.T) {
	h := newHarness(t, config.Default())
	h.open(t, "Delete?", deleteOptions()...)

	icon := h.doc.CreateElement("span")
	h.buttons()[1].AppendChild(icon)

	h.doc.Dispatch(dom.Click(icon))
	assert.Equal(t, []any{true}, h.calls)
}

func TestResolve_SingleResolution(t *testing.T) {
	cfg := config.Default()
	cfg.DismissDelay = 200

	h := newHarness(t, cfg)
	h.open(t, "Delete?", deleteOptions()...)
	btns := h.buttons()
	screen := h.ctrl.Elements().Screen

	h.doc.Dispatch(dom.Click(btns[0]))
	assert.Equal(t, PhaseDetaching, h.ctrl.Phase())

	// Residual events before removal completes.
	h.doc.Dispatch(dom.Click(btns[1]))
	h.doc.Dispatch(dom.Click(screen))
	h.pressEscape()

	assert.Equal(t, []any{false}, h.calls)
}

func TestResolve_WithoutCallback(t *testing.T) {
	var resolved []Resolution
	doc := dom.NewDocument()
	sched := schedule.NewManual()
	ctrl := New(doc, sched, config.Default(), Options{
		OnResolve: func(r Resolution) { resolved = append(resolved, r) },
	})

	require.True(t, ctrl.Alert("Hi"))
	doc.DispatchKey(dom.KeyDown("esc", dom.KeyCodeEscape))
	sched.Flush()

	assert.Equal(t, []Resolution{{Value: false, Cause: CauseEscapeKey, Index: -1}}, resolved)
	assert.Equal(t, PhaseIdle, ctrl.Phase())
	assert.Empty(t, doc.Body.Children())
}

func TestDetach_RoundTrip(t *testing.T) {
	h := newHarness(t, config.Default())
	h.open(t, "Delete?", deleteOptions()...)
	screen := h.ctrl.Elements().Screen

	assert.Equal(t, 1, h.doc.KeyListenerCount())

	h.pressEscape()
	assert.True(t, screen.IsAttached(), "removal waits for the dismiss delay")

	assert.Equal(t, 1, h.sched.Pending(), "only the removal is scheduled")

	h.sched.Advance(199 * time.Millisecond)
	assert.True(t, screen.IsAttached())
	assert.Equal(t, PhaseDetaching, h.ctrl.Phase())

	h.sched.Advance(time.Millisecond)
	assert.Equal(t, 0, h.sched.Pending())
	assert.False(t, screen.IsAttached())
	assert.Equal(t, PhaseIdle, h.ctrl.Phase())
	assert.Equal(t, 0, h.doc.KeyListenerCount())
	assert.Equal(t, Elements{}, h.ctrl.Elements())
	assert.Nil(t, h.ctrl.Values())

	h.pressEscape()
	h.doc.Dispatch(dom.Click(screen))
	assert.Len(t, h.calls, 1, "closed modal no longer reacts")
}

func TestDetach_ZeroDelay(t *testing.T) {
	cfg := config.Default()
	cfg.DismissDelay = 0

	h := newHarness(t, cfg)
	h.open(t, "Hi")
	h.pressEscape()

	h.sched.Advance(0)
	assert.Equal(t, PhaseIdle, h.ctrl.Phase())
	assert.Empty(t, h.doc.Body.Children())
}

func TestToggleClass(t *testing.T) {
	h := newHarness(t, config.Default())
	h.open(t, "Hi")
	screen := h.ctrl.Elements().Screen

	assert.False(t, screen.HasClass("alert-fade"), "toggle class is deferred to the next tick")

	h.sched.Advance(0)
	assert.True(t, screen.HasClass("alert-fade"))
	assert.True(t, screen.HasClass("alert-scr"))

	h.pressEscape()
	assert.False(t, screen.HasClass("alert-fade"), "toggle class is removed before removal")
	assert.True(t, screen.HasClass("alert-scr"))
}

func TestToggleClass_DismissedBeforeTick(t *testing.T) {
	h := newHarness(t, config.Default())
	h.open(t, "Hi")
	screen := h.ctrl.Elements().Screen

	h.pressEscape()
	h.sched.Flush()

	assert.False(t, screen.HasClass("alert-fade"))
}

func TestToggleClass_Disabled(t *testing.T) {
	cfg := config.Default()
	cfg.Screen.ToggleClass = ""

	h := newHarness(t, cfg)
	h.open(t, "Hi")

	assert.Equal(t, 0, h.sched.Pending())
}

func TestInit_MissingMessage(t *testing.T) {
	h := newHarness(t, config.Default())

	assert.False(t, h.ctrl.Init(Action{Callback: h.callback}, nil))
	assert.Equal(t, PhaseIdle, h.ctrl.Phase())
	assert.Empty(t, h.doc.Body.Children())
	assert.Equal(t, 0, h.doc.KeyListenerCount())
}

func TestInit_RefusedWhileOpen(t *testing.T) {
	h := newHarness(t, config.Default())
	h.open(t, "first")

	assert.False(t, h.ctrl.Alert("second"))
	assert.Len(t, h.doc.Body.Children(), 1)

	h.pressEscape()
	assert.False(t, h.ctrl.Alert("while detaching"))

	h.sched.Flush()
	assert.True(t, h.ctrl.Alert("third"))
	assert.Equal(t, "third", h.ctrl.Elements().Message.Text())
}

func TestInit_ReopenIsFresh(t *testing.T) {
	h := newHarness(t, config.Default())
	h.open(t, "Delete?", deleteOptions()...)
	h.doc.Dispatch(dom.Click(h.buttons()[1]))
	h.sched.Flush()

	h.open(t, "Hi")
	assert.Equal(t, []any{true}, h.ctrl.Values())
	assert.Equal(t, false, h.ctrl.EscapeValue())
	_, ok := h.ctrl.LastResolution()
	assert.False(t, ok)
}

func TestInit_Overrides(t *testing.T) {
	h := newHarness(t, config.Default())

	ok := h.ctrl.Init(Action{Message: "Hi", Callback: h.callback}, map[string]any{
		"button":        map[string]any{"default_ok": "got it"},
		"values":        map[string]any{"default_esc": "dismissed"},
		"dismiss_delay": 0,
		"unknown":       "ignored",
	})
	require.True(t, ok)

	assert.Equal(t, "got it", h.buttons()[0].Text())
	assert.Equal(t, 0, h.ctrl.Config().DismissDelay)

	h.pressEscape()
	h.sched.Advance(0)
	assert.Equal(t, []any{"dismissed"}, h.calls)
	assert.Equal(t, 200, h.ctrl.Config().DismissDelay, "overrides apply to one modal only")
}

type decision struct {
	Delete bool
}

func TestInit_OverridesKeepConfiguredValues(t *testing.T) {
	cfg := config.Default()
	cfg.Values.DefaultOk = decision{Delete: true}
	cfg.Values.DefaultEsc = decision{}
	h := newHarness(t, cfg)

	ok := h.ctrl.Init(Action{Message: "Hi", Callback: h.callback}, map[string]any{"dismiss_delay": 0})
	require.True(t, ok)
	assert.Equal(t, decision{}, h.ctrl.EscapeValue())

	h.doc.Dispatch(dom.Click(h.buttons()[0]))
	assert.Equal(t, []any{decision{Delete: true}}, h.calls)
}

func TestInit_InvalidOverridesFallBack(t *testing.T) {
	h := newHarness(t, config.Default())

	ok := h.ctrl.Init(Action{Message: "Hi"}, map[string]any{"dismiss_delay": "soon"})
	require.True(t, ok)
	assert.Equal(t, 200, h.ctrl.Config().DismissDelay)
}

func TestSetup(t *testing.T) {
	h := newHarness(t, config.Default())

	require.NoError(t, h.ctrl.Setup(map[string]any{"button": map[string]any{"default_ok": "fine"}}))
	h.open(t, "Hi")

	assert.Equal(t, "fine", h.buttons()[0].Text())
	assert.Error(t, h.ctrl.Setup(map[string]any{"dismiss_delay": []int{1}}))
}

func TestTarget(t *testing.T) {
	doc := dom.NewDocument()
	host := doc.CreateElement("div")
	host.SetID("main")
	doc.Body.AppendChild(host)

	cfg := config.Default()
	cfg.Target = "main"
	ctrl := New(doc, schedule.NewManual(), cfg, Options{})

	require.True(t, ctrl.Alert("Hi"))
	assert.Same(t, host, ctrl.Elements().Screen.Parent())

	cfg.Target = "missing"
	other := New(dom.NewDocument(), schedule.NewManual(), cfg, Options{})
	require.True(t, other.Alert("Hi"))
	assert.Equal(t, "body", other.Elements().Screen.Parent().Tag())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "detaching", PhaseDetaching.String())
	assert.Equal(t, "escape", CauseEscapeKey.String())
}
