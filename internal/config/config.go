package config

import (
	"math"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "guessgame"

	// DefaultMin is the inclusive lower bound of the secret.
	DefaultMin uint64 = 1

	// DefaultMax is the exclusive upper bound of the secret, so the
	// default secret is one of 1..100.
	DefaultMax uint64 = 101

	// MaxAllowedMax is the largest exclusive upper bound. Anything larger
	// could draw a secret the player is unable to type.
	MaxAllowedMax uint64 = math.MaxUint32 + 1
)

// Config holds all configuration options for guessgame.
// It is populated from defaults, the optional config file, and CLI flags,
// in that order of increasing precedence.
type Config struct {
	// Min is the inclusive lower bound of the secret.
	Min uint64

	// Max is the exclusive upper bound of the secret.
	Max uint64

	// Verbose enables debug logging on stderr.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .guessgame in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// History records every finished game in the SQLite database.
	History bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/guessgame on Linux).
	DBDir string
}

// NewConfig creates a new Config with default values.
// With these defaults the game behaves exactly like the classic version:
// a secret in 1..100 and nothing written to disk.
func NewConfig() *Config {
	return &Config{
		Min:   DefaultMin,
		Max:   DefaultMax,
		DBDir: XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for guessgame.
// On Linux: ~/.local/share/guessgame
// On macOS: ~/Library/Application Support/guessgame
// On Windows: %LOCALAPPDATA%\guessgame
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for guessgame.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ApplyFile overlays the values set in a configuration file.
// Fields the file leaves unset keep their current value.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.Range.Min != nil {
		c.Min = *f.Range.Min
	}
	if f.Range.Max != nil {
		c.Max = *f.Range.Max
	}
	if f.History.Enabled {
		c.History = true
	}
	if f.History.Dir != "" {
		c.DBDir = f.History.Dir
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.Min >= c.Max {
		return ErrInvalidRange
	}

	if c.Max > MaxAllowedMax {
		return ErrRangeTooLarge
	}

	if c.History && c.DBDir == "" {
		return ErrNoHistoryDir
	}

	return nil
}
