// Package database provides SQLite-based storage for finished games.
//
// The HistoryDB stores one row per game session and one row per accepted
// guess, which the history command turns into listings and statistics.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because the
// database is a single file under the XDG data directory and the pure Go
// driver keeps the binary CGO-free.
package database
