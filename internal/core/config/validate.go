package config

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration can drive a modal.
func (c Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DismissDelay < 0 {
		errs = errs.Append("dismiss_delay", fmt.Errorf("must be zero or greater, got %d", c.DismissDelay))
	}

	if strings.TrimSpace(c.Button.DefaultOk) == "" {
		errs = errs.Append("button.default_ok", fmt.Errorf("cannot be empty"))
	}

	return errs.ToError()
}

// Warnings returns non-fatal issues. Renderers key their styling off class
// names and ids, so a section without either cannot be styled.
func (c Config) Warnings() []string {
	sections := []struct {
		name string
		sec  Section
	}{
		{"screen", c.Screen.Section},
		{"window", c.Window},
		{"message", c.Message.Section},
		{"buttons", c.Buttons},
		{"button", Section{Class: c.Button.Class}},
	}

	var warnings []string
	for _, s := range sections {
		if s.sec.Class == "" && s.sec.ID == "" {
			warnings = append(warnings, fmt.Sprintf("%s has neither class nor id", s.name))
		}
	}

	return warnings
}
