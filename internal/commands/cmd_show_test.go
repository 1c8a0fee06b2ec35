package commands

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/alertkit/internal/alert"
	"github.com/hay-kot/alertkit/internal/core/config"
	"github.com/hay-kot/alertkit/internal/core/history"
)

// memHistory is an in-memory history.Store.
type memHistory struct {
	entries []history.Entry
	saveErr error
}

func (s *memHistory) List(context.Context) ([]history.Entry, error) {
	return slices.Clone(s.entries), nil
}

func (s *memHistory) Get(_ context.Context, id string) (history.Entry, error) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return history.Entry{}, history.ErrNotFound
}

func (s *memHistory) Save(_ context.Context, e history.Entry) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.entries = slices.Insert(s.entries, 0, e)
	return nil
}

func (s *memHistory) Clear(context.Context) error {
	s.entries = nil
	return nil
}

func newTestFlags(store history.Store) *Flags {
	return &Flags{
		Config:  config.Default(),
		History: store,
		Logger:  zerolog.Nop(),
	}
}

func exitCodeOf(t *testing.T, err error) int {
	t.Helper()

	var exitErr cli.ExitCoder
	require.True(t, errors.As(err, &exitErr), "expected exit error, got %v", err)
	return exitErr.ExitCode()
}

func TestShowFinish_PrintsAndRecordsAnswer(t *testing.T) {
	store := &memHistory{}
	cmd := NewShowCmd(newTestFlags(store))

	action := alert.Action{
		Message: "Delete?",
		Options: []alert.Option{
			{Label: "keep", Value: false},
			{Label: "remove", Value: map[string]any{"delete": true}},
		},
	}
	res := alert.Resolution{Value: map[string]any{"delete": true}, Cause: alert.CauseButton, Index: 1}

	var out bytes.Buffer
	require.NoError(t, cmd.finish(context.Background(), &out, config.Default(), action, res, true))
	assert.JSONEq(t, `{"delete": true}`, out.String())

	require.Len(t, store.entries, 1)
	e := store.entries[0]
	assert.Equal(t, "Delete?", e.Message)
	assert.Equal(t, []string{"keep", "remove"}, e.Options)
	assert.Equal(t, "button", e.Cause)
	assert.Equal(t, 1, e.Index)
	assert.Len(t, e.ID, 8)
	assert.False(t, e.Timestamp.IsZero())
}

func TestShowFinish_DefaultButtonLabelFromShownConfig(t *testing.T) {
	store := &memHistory{}
	cmd := NewShowCmd(newTestFlags(store))

	cfg, err := config.Default().Merge(map[string]any{"button": map[string]any{"default_ok": "got it"}})
	require.NoError(t, err)

	res := alert.Resolution{Value: true, Cause: alert.CauseButton, Index: 0}
	require.NoError(t, cmd.finish(context.Background(), &bytes.Buffer{}, cfg, alert.Action{Message: "Hi"}, res, true))

	require.Len(t, store.entries, 1)
	assert.Equal(t, []string{"got it"}, store.entries[0].Options)
}

func TestShowFinish_ExitCode(t *testing.T) {
	res := alert.Resolution{Value: false, Cause: alert.CauseEscapeKey, Index: -1}
	action := alert.Action{Message: "Hi"}

	t.Run("false answer with --exit-code", func(t *testing.T) {
		cmd := NewShowCmd(newTestFlags(&memHistory{}))
		cmd.exitCode = true

		var out bytes.Buffer
		err := cmd.finish(context.Background(), &out, config.Default(), action, res, true)
		assert.Equal(t, 1, exitCodeOf(t, err))
		assert.Equal(t, "false\n", out.String(), "the answer is printed before exiting")
	})

	t.Run("false answer without --exit-code", func(t *testing.T) {
		cmd := NewShowCmd(newTestFlags(&memHistory{}))

		var out bytes.Buffer
		require.NoError(t, cmd.finish(context.Background(), &out, config.Default(), action, res, true))
		assert.Equal(t, "false\n", out.String())
	})

	t.Run("true answer with --exit-code", func(t *testing.T) {
		cmd := NewShowCmd(newTestFlags(&memHistory{}))
		cmd.exitCode = true

		ok := alert.Resolution{Value: true, Cause: alert.CauseButton}
		require.NoError(t, cmd.finish(context.Background(), &bytes.Buffer{}, config.Default(), action, ok, true))
	})
}

func TestShowFinish_ClosedWithoutAnswer(t *testing.T) {
	store := &memHistory{}
	cmd := NewShowCmd(newTestFlags(store))

	var out bytes.Buffer
	err := cmd.finish(context.Background(), &out, config.Default(), alert.Action{Message: "Hi"}, alert.Resolution{}, false)

	assert.Equal(t, ExitDismissed, exitCodeOf(t, err))
	assert.Empty(t, out.String())
	assert.Empty(t, store.entries)
}

func TestShowFinish_NoHistory(t *testing.T) {
	store := &memHistory{}
	cmd := NewShowCmd(newTestFlags(store))
	cmd.noHistory = true

	res := alert.Resolution{Value: true, Cause: alert.CauseButton}
	require.NoError(t, cmd.finish(context.Background(), &bytes.Buffer{}, config.Default(), alert.Action{Message: "Hi"}, res, true))
	assert.Empty(t, store.entries)
}

func TestShowFinish_SaveFailureStillPrints(t *testing.T) {
	store := &memHistory{saveErr: errors.New("disk full")}
	cmd := NewShowCmd(newTestFlags(store))

	var out bytes.Buffer
	res := alert.Resolution{Value: "yes", Cause: alert.CauseButton}
	require.NoError(t, cmd.finish(context.Background(), &out, config.Default(), alert.Action{Message: "Hi"}, res, true))
	assert.Equal(t, "\"yes\"\n", out.String())
}

func TestShow_RejectsInvalidOverrides(t *testing.T) {
	tests := []struct {
		name  string
		set   string
		field string
	}{
		{name: "negative delay", set: "dismiss_delay=-5", field: "dismiss_delay"},
		{name: "empty default label", set: "button.default_ok=", field: "button.default_ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewShowCmd(newTestFlags(&memHistory{})).Register(&cli.Command{
				Name:   "alertkit",
				Writer: &bytes.Buffer{},
			})

			err := app.Run(context.Background(), []string{"alertkit", "show", "--set", tt.set, "hello"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")

			var fieldErrs criterio.FieldErrors
			require.True(t, errors.As(err, &fieldErrs))
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
		})
	}
}
