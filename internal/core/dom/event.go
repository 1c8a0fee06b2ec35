package dom

// Event types.
const (
	EventClick   = "click"
	EventKeyDown = "keydown"
)

// KeyCodeEscape is the key code carried by escape keydown events.
const KeyCodeEscape = 27

// Handler receives dispatched events.
type Handler func(ev *Event)

// Event is a click or keydown delivered through a Document.
type Event struct {
	Type    string
	Target  *Element // originating element, nil for keydown
	Key     string   // key name, e.g. "esc" or "enter"
	KeyCode int

	stopped bool
}

// Click returns a click event originating at target.
func Click(target *Element) *Event {
	return &Event{Type: EventClick, Target: target}
}

// KeyDown returns a keydown event.
func KeyDown(key string, code int) *Event {
	return &Event{Type: EventKeyDown, Key: key, KeyCode: code}
}

// StopPropagation prevents the event from reaching further listeners.
func (ev *Event) StopPropagation() { ev.stopped = true }

// Stopped reports whether StopPropagation was called.
func (ev *Event) Stopped() bool { return ev.stopped }
