// Package model defines the core data structures shared by the game loop,
// the history database and the report writers.
//
// This package contains the following main types:
//   - Outcome: The result of comparing one guess against the secret value
//   - Guess: One accepted guess together with its outcome
//   - Session: A complete game from the first prompt to the win
//   - Stats and History: Aggregated data rendered by the report package
package model
