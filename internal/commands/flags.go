package commands

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/hay-kot/alertkit/internal/core/config"
	"github.com/hay-kot/alertkit/internal/core/history"
)

// maxHistoryEntries caps the outcome history file.
const maxHistoryEntries = 200

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config config.Config

	// History records resolved alerts
	History history.Store

	// Logger carries the alert component field
	Logger zerolog.Logger
}

// HistoryFile returns the path of the outcome history file.
func (f *Flags) HistoryFile() string {
	return filepath.Join(f.DataDir, "history.json")
}

// MaxHistoryEntries returns the number of outcomes kept on disk.
func (f *Flags) MaxHistoryEntries() int {
	return maxHistoryEntries
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "alertkit", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "alertkit")
}
