package config

// File represents the structure of the .guessgame configuration file.
type File struct {
	// Range overrides the secret range.
	Range RangeConfig `yaml:"range,omitempty"`

	// History controls recording of finished games.
	History HistoryConfig `yaml:"history,omitempty"`
}

// RangeConfig holds the secret bounds. Pointers distinguish an explicit 0
// from an unset value.
type RangeConfig struct {
	// Min is the inclusive lower bound.
	Min *uint64 `yaml:"min,omitempty"`

	// Max is the exclusive upper bound.
	Max *uint64 `yaml:"max,omitempty"`
}

// HistoryConfig holds the game history settings.
type HistoryConfig struct {
	// Enabled records each finished game in the history database.
	Enabled bool `yaml:"enabled,omitempty"`

	// Dir is the directory of the history database.
	Dir string `yaml:"dir,omitempty"`
}
