package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/alertkit/internal/core/config"
	"github.com/hay-kot/alertkit/internal/printer"
)

type ConfigCmd struct {
	flags *Flags

	sets []string
}

// NewConfigCmd creates a new config command
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Inspect the alert configuration",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate the configuration and report styling warnings",
				UsageText: "alertkit config validate [--set key.path=value]",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:        "set",
						Usage:       "config override as key.path=value, repeatable",
						Destination: &cmd.sets,
					},
				},
				Action: cmd.runValidate,
			},
			{
				Name:      "print",
				Usage:     "Print the effective configuration as YAML",
				UsageText: "alertkit config print [--set key.path=value]",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:        "set",
						Usage:       "config override as key.path=value, repeatable",
						Destination: &cmd.sets,
					},
				},
				Action: cmd.runPrint,
			},
		},
	})

	return app
}

// effective applies the --set overrides to the loaded config and validates
// the result.
func (cmd *ConfigCmd) effective() (config.Config, error) {
	overrides, err := parseSets(cmd.sets)
	if err != nil {
		return config.Config{}, fmt.Errorf("parse overrides: %w", err)
	}

	cfg, err := cmd.flags.Config.Merge(overrides)
	if err != nil {
		return config.Config{}, fmt.Errorf("apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (cmd *ConfigCmd) runValidate(ctx context.Context, c *cli.Command) error {
	cfg, err := cmd.effective()
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	p.Successf("Config valid: %s", cmd.flags.ConfigPath)
	for _, w := range cfg.Warnings() {
		p.Warnf("%s", w)
	}

	return nil
}

func (cmd *ConfigCmd) runPrint(ctx context.Context, c *cli.Command) error {
	cfg, err := cmd.effective()
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	for _, w := range cfg.Warnings() {
		p.Warnf("%s", w)
	}

	enc := yaml.NewEncoder(c.Root().Writer)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
