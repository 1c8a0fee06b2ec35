package alert

import "github.com/hay-kot/alertkit/internal/core/dom"

// Option is a caller defined button.
type Option struct {
	Label string
	Value any
	// Escape marks Value as the outcome of escape and background clicks.
	Escape bool
}

// Action describes one modal invocation.
type Action struct {
	Message  string
	Callback func(value any) // optional
	Options  []Option        // optional, a single default button when empty
}

// Phase is the lifecycle state of a Controller.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseBuilt
	PhaseAttached
	PhaseResolving
	PhaseDetaching
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBuilt:
		return "built"
	case PhaseAttached:
		return "attached"
	case PhaseResolving:
		return "resolving"
	case PhaseDetaching:
		return "detaching"
	default:
		return "unknown"
	}
}

// Cause identifies the input that dismissed a modal.
type Cause int

const (
	CauseButton Cause = iota
	CauseScreen
	CauseEscapeKey
)

func (c Cause) String() string {
	switch c {
	case CauseButton:
		return "button"
	case CauseScreen:
		return "screen"
	case CauseEscapeKey:
		return "escape"
	default:
		return "unknown"
	}
}

// Resolution is the single outcome of an open modal.
type Resolution struct {
	Value any
	Cause Cause
	Index int // button ordinal, -1 unless Cause is CauseButton
}

// Elements are the four elements built for an open modal.
type Elements struct {
	Screen  *dom.Element
	Window  *dom.Element
	Message *dom.Element
	Buttons *dom.Element
}
