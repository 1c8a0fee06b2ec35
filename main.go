package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/alertkit/internal/commands"
	"github.com/hay-kot/alertkit/internal/core/config"
	"github.com/hay-kot/alertkit/internal/printer"
	"github.com/hay-kot/alertkit/internal/store/jsonfile"
	"github.com/hay-kot/alertkit/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	if err := setupLogger("info", "", nil); err != nil {
		panic(err)
	}

	var (
		p     = printer.New(os.Stderr)
		ctx   = printer.NewContext(context.Background(), p)
		flags = &commands.Flags{}
	)

	var deferredLogs *utils.DeferredWriter

	app := &cli.Command{
		Name:      "alertkit",
		Usage:     "Ask a question with a modal alert in the terminal",
		UsageText: "alertkit [global options] [message] | alertkit command [command options]",
		Description: `alertkit draws a modal alert over the terminal and prints the answer as JSON.

Each --option becomes a button. Escape or a click outside the alert answers
with the escape value. Answers are recorded and can be listed with
'alertkit history'.

Run 'alertkit "Deploy now?" -o Yes=true -o No=false' to ask a question.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("ALERTKIT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (optional)",
				Sources:     cli.EnvVars("ALERTKIT_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("ALERTKIT_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("ALERTKIT_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// The alert owns the terminal unless a non-interactive subcommand runs
			sub := c.Command(c.Args().First())
			isTUI := sub == nil || sub.Name == "show"

			var deferred io.Writer
			if isTUI {
				deferredLogs = &utils.DeferredWriter{}
				deferred = deferredLogs
			}

			if err := setupLogger(flags.LogLevel, flags.LogFile, deferred); err != nil {
				return ctx, err
			}

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			flags.History = jsonfile.NewHistoryStore(flags.HistoryFile(), flags.MaxHistoryEntries())
			flags.Logger = log.With().Str("component", "alert").Logger()
			return ctx, nil
		},
		// Exit codes are applied below so deferred logs still flush.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	showCmd := commands.NewShowCmd(flags)

	app = showCmd.Register(app)
	app = commands.NewHistoryCmd(flags).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)

	// Showing an alert is the default action
	app.Flags = append(app.Flags, showCmd.Flags()...)
	app.Action = showCmd.Run

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
			if msg := exitErr.Error(); msg != "" {
				p.Warnf("%s", msg)
			}
		} else {
			fmt.Println()
			printer.Ctx(ctx).FatalError(err)
			exitCode = 1
		}
	}

	// Flush deferred logs to console after the alert closes
	if deferredLogs != nil {
		if err := deferredLogs.Flush(zerolog.ConsoleWriter{Out: os.Stderr}); err != nil {
			fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", err)
		}
	}

	os.Exit(exitCode)
}

func setupLogger(level string, logFile string, deferred io.Writer) error {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}

	if logFile != "" {
		logDir := filepath.Dir(logFile)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		if deferred != nil {
			// Alert on screen: file now, console after exit
			output = io.MultiWriter(file, deferred)
		} else {
			output = io.MultiWriter(
				zerolog.ConsoleWriter{Out: os.Stderr},
				file,
			)
		}
	} else if deferred != nil {
		output = deferred
	}

	log.Logger = log.Output(output).Level(parsedLevel)

	return nil
}
