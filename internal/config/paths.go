package config

import (
	"os"
	"path/filepath"
)

// DataDirEnv overrides the history data directory when set.
const DataDirEnv = "ELO_TRACKER_DATA_DIR"

// HistoryFileName is the fixed name of the history file inside the data directory.
const HistoryFileName = "elo_history.json"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "elotrack", "config.toml")
}

// DataDir resolves the history data directory. The environment variable wins
// over the configured directory; the fallback is a dot-directory in $HOME.
func DataDir(configured string) string {
	if v := os.Getenv(DataDirEnv); v != "" {
		return v
	}
	if configured != "" {
		return configured
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".elo_tracker"
	}
	return filepath.Join(home, ".elo_tracker")
}

// HistoryPath returns the full history file path for the resolved data directory.
func HistoryPath(configured string) string {
	return filepath.Join(DataDir(configured), HistoryFileName)
}
