// Package config provides configuration structures and utilities for guessgame.
// It defines the secret range, the optional game history settings, and the
// loader for the .guessgame YAML file.
package config
