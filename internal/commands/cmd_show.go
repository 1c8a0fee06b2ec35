package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/alertkit/internal/alert"
	"github.com/hay-kot/alertkit/internal/core/config"
	"github.com/hay-kot/alertkit/internal/core/history"
	"github.com/hay-kot/alertkit/internal/tui"
	"github.com/hay-kot/alertkit/pkg/randid"
)

// ExitDismissed is the exit code when the alert closes without an answer.
const ExitDismissed = 130

type ShowCmd struct {
	flags *Flags

	// Command-specific flags
	message    string
	options    []string
	escape     string
	sets       []string
	background string
	exitCode   bool
	noHistory  bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags) *ShowCmd {
	return &ShowCmd{flags: flags}
}

// Flags returns the show flags for registration on the root command
func (cmd *ShowCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "message",
			Aliases:     []string{"m"},
			Usage:       "message to display (defaults to the positional arguments)",
			Destination: &cmd.message,
		},
		&cli.StringSliceFlag{
			Name:        "option",
			Aliases:     []string{"o"},
			Usage:       "button as LABEL[=VALUE], repeatable; VALUE is parsed as YAML",
			Destination: &cmd.options,
		},
		&cli.StringFlag{
			Name:        "escape",
			Usage:       "label of the option returned on escape or background click",
			Destination: &cmd.escape,
		},
		&cli.StringSliceFlag{
			Name:        "set",
			Usage:       "config override as key.path=value, repeatable",
			Destination: &cmd.sets,
		},
		&cli.StringFlag{
			Name:        "background",
			Usage:       "text drawn behind the alert",
			Destination: &cmd.background,
		},
		&cli.BoolFlag{
			Name:        "exit-code",
			Usage:       "exit with status 1 when the answer is false",
			Destination: &cmd.exitCode,
		},
		&cli.BoolFlag{
			Name:        "no-history",
			Usage:       "do not record the answer",
			Destination: &cmd.noHistory,
		},
	}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show an alert and print the answer",
		UsageText: "alertkit show [options] [message]",
		Description: `Shows a modal alert in the terminal and prints the value of the answer as JSON.

Clicking a button answers with its value. Pressing escape or clicking outside
the alert answers with the escape value: the option named by --escape, or
values.default_esc from the config. Without --option a single button labeled
button.default_ok answers values.default_ok.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})

	return app
}

// Run executes the show command. Exported for use as default command.
func (cmd *ShowCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	message := cmd.message
	if message == "" {
		message = strings.Join(c.Args().Slice(), " ")
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("a message is required, pass --message or an argument")
	}

	opts, err := parseOptions(cmd.options, cmd.escape)
	if err != nil {
		return fmt.Errorf("parse options: %w", err)
	}

	overrides, err := parseSets(cmd.sets)
	if err != nil {
		return fmt.Errorf("parse overrides: %w", err)
	}

	cfg, err := cmd.flags.Config.Merge(overrides)
	if err != nil {
		return fmt.Errorf("apply overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("show requires an interactive terminal")
	}

	logger := cmd.flags.Logger
	action := alert.Action{Message: message, Options: opts}

	m := tui.New(cmd.flags.Config, action, tui.Options{
		Background: cmd.background,
		Overrides:  overrides,
		Logger:     &logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	res, ok := final.(tui.Model).Resolution()
	return cmd.finish(ctx, c.Root().Writer, cfg, action, res, ok)
}

// finish records the outcome and prints its value as JSON to w. cfg is the
// configuration the alert was shown with.
func (cmd *ShowCmd) finish(ctx context.Context, w io.Writer, cfg config.Config, action alert.Action, res alert.Resolution, ok bool) error {
	if !ok {
		return cli.Exit("alert closed without an answer", ExitDismissed)
	}

	if !cmd.noHistory {
		cmd.record(ctx, cfg, action, res)
	}

	if err := json.NewEncoder(w).Encode(res.Value); err != nil {
		return fmt.Errorf("encode answer: %w", err)
	}

	if cmd.exitCode && res.Value == false {
		return cli.Exit("", 1)
	}

	return nil
}

// record saves the outcome. Failures are logged, the answer is still printed.
func (cmd *ShowCmd) record(ctx context.Context, cfg config.Config, action alert.Action, res alert.Resolution) {
	labels := make([]string, 0, len(action.Options))
	for _, o := range action.Options {
		labels = append(labels, o.Label)
	}
	if len(labels) == 0 {
		labels = append(labels, cfg.Button.DefaultOk)
	}

	entry := history.Entry{
		ID:        randid.Generate(8),
		Message:   action.Message,
		Options:   labels,
		Value:     res.Value,
		Cause:     res.Cause.String(),
		Index:     res.Index,
		Timestamp: time.Now(),
	}

	if err := cmd.flags.History.Save(ctx, entry); err != nil {
		cmd.flags.Logger.Warn().Err(err).Msg("failed to record alert history")
	}
}
