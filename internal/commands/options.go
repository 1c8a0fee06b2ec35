package commands

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/alertkit/internal/alert"
	"github.com/hay-kot/alertkit/pkg/merge"
)

// parseOptions turns LABEL[=VALUE] arguments into alert options. A missing value
// defaults to the label. escape names the label whose value is returned on
// escape; it must match one of the options when set.
func parseOptions(args []string, escape string) ([]alert.Option, error) {
	var errs criterio.FieldErrorsBuilder

	opts := make([]alert.Option, 0, len(args))
	seen := make(map[string]bool, len(args))

	for i, arg := range args {
		field := fmt.Sprintf("option[%d]", i)

		label, raw, hasValue := strings.Cut(arg, "=")
		label = strings.TrimSpace(label)
		if label == "" {
			errs = errs.Append(field, fmt.Errorf("label is required"))
			continue
		}
		if seen[label] {
			errs = errs.Append(field, fmt.Errorf("duplicate label %q", label))
			continue
		}
		seen[label] = true

		var value any = label
		if hasValue {
			value = parseScalar(raw)
		}

		opts = append(opts, alert.Option{
			Label:  label,
			Value:  value,
			Escape: escape != "" && label == escape,
		})
	}

	if escape != "" && !seen[escape] {
		errs = errs.Append("escape", fmt.Errorf("no option labeled %q", escape))
	}

	if err := errs.ToError(); err != nil {
		return nil, err
	}

	return opts, nil
}

// parseSets folds key.path=value assignments into a nested override map.
func parseSets(sets []string) (map[string]any, error) {
	var errs criterio.FieldErrorsBuilder

	overrides := map[string]any{}
	for i, set := range sets {
		path, raw, ok := strings.Cut(set, "=")
		path = strings.TrimSpace(path)
		if !ok || path == "" {
			errs = errs.Append(fmt.Sprintf("set[%d]", i), fmt.Errorf("expected key.path=value, got %q", set))
			continue
		}

		overrides = merge.Deep(overrides, merge.Nest(strings.Split(path, "."), parseScalar(raw)))
	}

	if err := errs.ToError(); err != nil {
		return nil, err
	}

	return overrides, nil
}

// parseScalar decodes s as a YAML value so "true", "3" or "null" keep their
// types. Anything that does not parse is kept as a string.
func parseScalar(s string) any {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	if v == nil && strings.TrimSpace(s) != "null" && strings.TrimSpace(s) != "~" {
		return s
	}
	return v
}
