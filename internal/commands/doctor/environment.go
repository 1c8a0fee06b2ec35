package doctor

import (
	"context"
	"os"

	"golang.org/x/term"

	"github.com/hay-kot/alertkit/internal/core/history"
)

// TerminalCheck reports whether alerts can be shown from this process.
type TerminalCheck struct {
	fd int
}

// NewTerminalCheck creates a check for the terminal attached to stdin.
func NewTerminalCheck() *TerminalCheck {
	return &TerminalCheck{fd: int(os.Stdin.Fd())}
}

func (c *TerminalCheck) Name() string {
	return "Terminal"
}

func (c *TerminalCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if !term.IsTerminal(c.fd) {
		result.Items = append(result.Items, CheckItem{
			Label:  "Interactive",
			Status: StatusWarn,
			Detail: "stdin is not a terminal, 'show' will refuse to run",
		})
		return result
	}

	item := CheckItem{Label: "Interactive", Status: StatusPass}
	if w, h, err := term.GetSize(c.fd); err == nil {
		item.Detail = sizeString(w, h)
	}
	result.Items = append(result.Items, item)

	return result
}

// HistoryCheck verifies the outcome history can be read.
type HistoryCheck struct {
	store history.Store
	path  string
}

// NewHistoryCheck creates a check reading the given store.
func NewHistoryCheck(store history.Store, path string) *HistoryCheck {
	return &HistoryCheck{store: store, path: path}
}

func (c *HistoryCheck) Name() string {
	return "History"
}

func (c *HistoryCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	entries, err := c.store.List(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:   "Readable",
			Status:  StatusFail,
			Detail:  err.Error(),
			Fixable: true,
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "Readable",
		Status: StatusPass,
		Detail: c.path + " (" + countString(len(entries), "entry", "entries") + ")",
	})

	return result
}
