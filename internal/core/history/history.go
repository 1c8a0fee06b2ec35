// Package history defines alert outcome history domain types and interfaces.
package history

import (
	"fmt"
	"time"
)

// Entry records one resolved alert.
type Entry struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Options   []string  `json:"options"` // button labels in order
	Value     any       `json:"value"`
	Cause     string    `json:"cause"`           // button, screen or escape
	Index     int       `json:"index"`           // button ordinal, -1 when escaped
	Timestamp time.Time `json:"timestamp"`
}

// Escaped returns true if the alert was dismissed by escape or a background
// click rather than a button.
func (e *Entry) Escaped() bool {
	return e.Index < 0
}

// Choice returns a short description of how the alert was answered.
func (e *Entry) Choice() string {
	if e.Escaped() || e.Index >= len(e.Options) {
		return e.Cause
	}
	return fmt.Sprintf("%s %q", e.Cause, e.Options[e.Index])
}
