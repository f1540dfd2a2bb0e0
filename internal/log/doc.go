// Package log provides the guessgame logger, built on top of the standard
// slog package.
//
// The RedactingHandler masks every attribute that would reveal the answer
// of a running game (the secret value and its aliases). Debug logs can then
// be enabled with --verbose during play without spoiling the game.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Debug("game started", "secret", 42) // secret=***HIDDEN***
//	slog.SetDefault(logger)
package log
