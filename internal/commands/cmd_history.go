package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/alertkit/internal/core/history"
	"github.com/hay-kot/alertkit/internal/printer"
	"github.com/hay-kot/alertkit/pkg/randid"
)

type HistoryCmd struct {
	flags *Flags

	// Command-specific flags
	clear bool
	limit int
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags) *HistoryCmd {
	return &HistoryCmd{flags: flags}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "View or clear recorded answers",
		UsageText: "alertkit history [options] [id]",
		Description: `Lists answers recorded by 'show', newest first.

Pass an entry ID to show the full record for that answer.
Use --clear to remove all history entries.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "clear",
				Aliases:     []string{"c"},
				Usage:       "clear all recorded answers",
				Destination: &cmd.clear,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "number of entries to show (0 for all)",
				Value:       20,
				Destination: &cmd.limit,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.clear {
		if err := cmd.flags.History.Clear(ctx); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		p.Successf("History cleared")
		return nil
	}

	if c.Args().Len() > 0 {
		return cmd.showEntry(ctx, c, c.Args().First())
	}

	entries, err := cmd.flags.History.List(ctx)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if len(entries) == 0 {
		p.Infof("No recorded answers")
		return nil
	}

	if cmd.limit > 0 && len(entries) > cmd.limit {
		entries = entries[:cmd.limit]
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTIME\tANSWER\tVALUE\tMESSAGE")

	for _, e := range entries {
		value, err := json.Marshal(e.Value)
		if err != nil {
			value = []byte("?")
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Choice(),
			value,
			truncate(e.Message, 40),
		)
	}

	return w.Flush()
}

func (cmd *HistoryCmd) showEntry(ctx context.Context, c *cli.Command, id string) error {
	if !randid.Valid(id) {
		return fmt.Errorf("%q is not a history entry ID", id)
	}

	e, err := cmd.flags.History.Get(ctx, id)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			return fmt.Errorf("no history entry with ID %q", id)
		}
		return fmt.Errorf("get history entry: %w", err)
	}

	value, err := json.Marshal(e.Value)
	if err != nil {
		value = []byte("?")
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "ID\t%s\n", e.ID)
	_, _ = fmt.Fprintf(w, "Time\t%s\n", e.Timestamp.Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(w, "Message\t%s\n", e.Message)
	_, _ = fmt.Fprintf(w, "Options\t%s\n", strings.Join(e.Options, ", "))
	_, _ = fmt.Fprintf(w, "Answer\t%s\n", e.Choice())
	_, _ = fmt.Fprintf(w, "Value\t%s\n", value)

	return w.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
