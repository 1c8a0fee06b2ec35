package doctor

import (
	"context"
	"errors"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/alertkit/internal/core/config"
)

// ConfigCheck validates the alert configuration.
type ConfigCheck struct {
	config     config.Config
	configPath string
}

// NewConfigCheck creates a new configuration check.
func NewConfigCheck(cfg config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{
		config:     cfg,
		configPath: configPath,
	}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	err := c.config.Validate()
	warnings := c.config.Warnings()

	if err == nil && len(warnings) == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "Config valid",
			Status: StatusPass,
			Detail: c.configPath,
		})
		return result
	}

	if err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				result.Items = append(result.Items, CheckItem{
					Label:  fe.Field,
					Status: StatusFail,
					Detail: fe.Err.Error(),
				})
			}
		} else {
			result.Items = append(result.Items, CheckItem{
				Label:  "validation",
				Status: StatusFail,
				Detail: err.Error(),
			})
		}
	}

	for _, w := range warnings {
		result.Items = append(result.Items, CheckItem{
			Label:  "styling",
			Status: StatusWarn,
			Detail: w,
		})
	}

	return result
}
