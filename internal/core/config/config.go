// Package config handles configuration loading, merging and validation for
// alertkit modals.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/alertkit/pkg/merge"
)

// TargetBody names the document root as the host surface.
const TargetBody = "body"

// Config holds the configuration of a single modal. A Config value is never
// mutated in place; Merge returns a new value.
type Config struct {
	Target       string        `yaml:"target"`
	Screen       ScreenConfig  `yaml:"screen"`
	Window       Section       `yaml:"window"`
	Message      MessageConfig `yaml:"message"`
	Buttons      Section       `yaml:"buttons"`
	Button       ButtonConfig  `yaml:"button"`
	Values       Values        `yaml:"values"`
	DismissDelay int           `yaml:"dismiss_delay"` // milliseconds
}

// Section holds the styling hooks applied to one rendered element.
type Section struct {
	Class string `yaml:"class"`
	ID    string `yaml:"id"`
}

// ScreenConfig configures the backdrop element.
type ScreenConfig struct {
	Section `yaml:",inline"`
	// ToggleClass is added on the tick after attach and removed before
	// detach so renderers can transition in and out.
	ToggleClass string `yaml:"toggle_class"`
}

// MessageConfig configures the message element.
type MessageConfig struct {
	Section  `yaml:",inline"`
	Markdown bool `yaml:"markdown"`
}

// ButtonConfig configures every rendered button.
type ButtonConfig struct {
	Class       string `yaml:"class"`
	EqualWidths bool   `yaml:"equal_widths"`
	DefaultOk   string `yaml:"default_ok"` // label of the synthesized button
}

// Values holds the outcomes used when the caller supplies none.
type Values struct {
	DefaultOk  any `yaml:"default_ok"`
	DefaultEsc any `yaml:"default_esc"`
}

// Default returns a Config with the built-in defaults.
func Default() Config {
	return Config{
		Target: TargetBody,
		Screen: ScreenConfig{
			Section:     Section{Class: "alert-scr"},
			ToggleClass: "alert-fade",
		},
		Window:  Section{Class: "alert-win"},
		Message: MessageConfig{Section: Section{Class: "alert-msg"}},
		Buttons: Section{Class: "alert-btns-wrap"},
		Button: ButtonConfig{
			Class:       "alert-btn",
			EqualWidths: true,
			DefaultOk:   "okay",
		},
		Values: Values{
			DefaultOk:  true,
			DefaultEsc: false,
		},
		DismissDelay: 200,
	}
}

// Load reads configuration overrides from the YAML file at path and applies
// them to the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var overrides map[string]any
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg, err = cfg.Merge(overrides)
	if err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Merge returns a copy of c with overrides applied. Only keys that exist in
// Config are honored; nested sections are merged key by key so a partial
// override keeps sibling values. Unknown keys are ignored. The resolution
// values are returned exactly as configured or overridden.
func (c Config) Merge(overrides map[string]any) (Config, error) {
	if len(overrides) == 0 {
		return c, nil
	}

	// Resolution values keep their Go types and never pass through YAML.
	shape := c
	shape.Values = Values{}

	base, err := shape.ToMap()
	if err != nil {
		return Config{}, err
	}

	merged := merge.Defaults(base, overrides)
	delete(merged, "values")

	data, err := yaml.Marshal(merged)
	if err != nil {
		return Config{}, fmt.Errorf("encode merged config: %w", err)
	}

	var out Config
	if err := yaml.Unmarshal(data, &out); err != nil {
		return Config{}, fmt.Errorf("decode merged config: %w", err)
	}

	out.Values = c.Values
	if v, ok := merge.Lookup(overrides, "values", "default_ok"); ok {
		out.Values.DefaultOk = v
	}
	if v, ok := merge.Lookup(overrides, "values", "default_esc"); ok {
		out.Values.DefaultEsc = v
	}

	return out, nil
}

// ToMap projects the config onto its YAML key space.
func (c Config) ToMap() (map[string]any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return m, nil
}

// DismissDelayDuration returns the dismiss delay as a time.Duration.
func (c Config) DismissDelayDuration() time.Duration {
	return time.Duration(c.DismissDelay) * time.Millisecond
}
