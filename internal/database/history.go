package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/guessgame/internal/model"
)

// DBFileName is the name of the SQLite file inside the database directory.
const DBFileName = "guessgame.db"

// ErrSessionNotFound is returned when a session ID does not exist.
var ErrSessionNotFound = errors.New("session not found")

// HistoryDB provides SQLite-based storage for finished game sessions.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (play a game with --history first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}
	dsn += "&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the path of the database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		secret INTEGER NOT NULL,
		low INTEGER NOT NULL,
		high INTEGER NOT NULL,
		attempts INTEGER NOT NULL,
		invalid_inputs INTEGER NOT NULL DEFAULT 0,
		won INTEGER NOT NULL DEFAULT 0,
		started_at TEXT NOT NULL,
		finished_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);

	-- One row per accepted guess, in play order
	CREATE TABLE IF NOT EXISTS guesses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		value INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		UNIQUE(session_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_guesses_session ON guesses(session_id);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveSession stores a session and its guesses in one transaction and
// sets session.ID to the new row ID.
func (hdb *HistoryDB) SaveSession(ctx context.Context, session *model.Session) (err error) {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var finishedAt sql.NullString
	if !session.FinishedAt.IsZero() {
		finishedAt = sql.NullString{String: formatTimestamp(session.FinishedAt), Valid: true}
	}

	result, err := tx.ExecContext(ctx, `
	INSERT INTO sessions (secret, low, high, attempts, invalid_inputs, won, started_at, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		int64(session.Secret), //nolint:gosec // bounded by config.MaxAllowedMax
		int64(session.Low),    //nolint:gosec // bounded by config.MaxAllowedMax
		int64(session.High),   //nolint:gosec // bounded by config.MaxAllowedMax
		session.Attempts(),
		session.InvalidInputs,
		session.Won(),
		formatTimestamp(session.StartedAt),
		finishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get session id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO guesses (session_id, seq, value, outcome) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare guess insert: %w", err)
	}
	defer stmt.Close()

	for i, g := range session.Guesses {
		if _, err = stmt.ExecContext(ctx, id, i, int64(g.Value), g.Outcome.String()); err != nil { //nolint:gosec // guesses are uint32
			return fmt.Errorf("failed to insert guess: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}

	session.ID = id
	return nil
}

// GetSession retrieves one session with its guesses.
func (hdb *HistoryDB) GetSession(ctx context.Context, id int64) (*model.Session, error) {
	row := hdb.db.QueryRowContext(ctx, `
	SELECT id, secret, low, high, invalid_inputs, started_at, finished_at
	FROM sessions WHERE id = ?
	`, id)

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := hdb.loadGuesses(ctx, []*model.Session{session}); err != nil {
		return nil, err
	}
	return session, nil
}

// ListSessions returns the most recent sessions first.
// A limit of zero or less returns all sessions.
func (hdb *HistoryDB) ListSessions(ctx context.Context, limit int) ([]*model.Session, error) {
	query := `
	SELECT id, secret, low, high, invalid_inputs, started_at, finished_at
	FROM sessions
	ORDER BY started_at DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*model.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	// The single connection must be released before guesses are queried.
	_ = rows.Close()

	if err := hdb.loadGuesses(ctx, sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Stats aggregates all won sessions.
func (hdb *HistoryDB) Stats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	err := hdb.db.QueryRowContext(ctx, `
	SELECT COUNT(*), COALESCE(SUM(attempts), 0), COALESCE(MIN(attempts), 0), COALESCE(MAX(attempts), 0)
	FROM sessions WHERE won = 1
	`).Scan(&stats.Games, &stats.TotalAttempts, &stats.BestAttempts, &stats.WorstAttempts)
	if err != nil {
		return model.Stats{}, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}

// DeleteAll removes every stored session and guess and returns the number
// of sessions removed.
func (hdb *HistoryDB) DeleteAll(ctx context.Context) (n int64, err error) {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM guesses"); err != nil {
		return 0, fmt.Errorf("failed to clear guesses: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM sessions")
	if err != nil {
		return 0, fmt.Errorf("failed to clear sessions: %w", err)
	}
	if n, err = result.RowsAffected(); err != nil {
		return 0, fmt.Errorf("failed to count cleared sessions: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return n, nil
}

// loadGuesses fills the Guesses of each session.
func (hdb *HistoryDB) loadGuesses(ctx context.Context, sessions []*model.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	byID := make(map[int64]*model.Session, len(sessions))
	placeholders := make([]string, 0, len(sessions))
	args := make([]any, 0, len(sessions))
	for _, s := range sessions {
		byID[s.ID] = s
		placeholders = append(placeholders, "?")
		args = append(args, s.ID)
	}

	query := `SELECT session_id, value, outcome FROM guesses WHERE session_id IN (` +
		strings.Join(placeholders, ",") + `) ORDER BY session_id, seq`

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query guesses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			sessionID int64
			value     int64
			outcome   string
		)
		if err := rows.Scan(&sessionID, &value, &outcome); err != nil {
			return fmt.Errorf("failed to scan guess: %w", err)
		}
		o, err := model.ParseOutcome(outcome)
		if err != nil {
			return fmt.Errorf("failed to parse guess: %w", err)
		}
		if s, ok := byID[sessionID]; ok {
			s.Guesses = append(s.Guesses, model.Guess{Value: uint64(value), Outcome: o}) //nolint:gosec // stored from uint32
		}
	}

	return rows.Err()
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSession reads one sessions row. Guesses are loaded separately.
func scanSession(row rowScanner) (*model.Session, error) {
	var (
		s          model.Session
		secret     int64
		low        int64
		high       int64
		startedAt  string
		finishedAt sql.NullString
	)
	if err := row.Scan(&s.ID, &secret, &low, &high, &s.InvalidInputs, &startedAt, &finishedAt); err != nil {
		return nil, err
	}

	s.Secret = uint64(secret) //nolint:gosec // stored from uint64 within range
	s.Low = uint64(low)       //nolint:gosec // stored from uint64 within range
	s.High = uint64(high)     //nolint:gosec // stored from uint64 within range
	s.StartedAt = parseTimestamp(startedAt)
	if finishedAt.Valid {
		s.FinishedAt = parseTimestamp(finishedAt.String)
	}
	s.Guesses = make([]model.Guess, 0)

	return &s, nil
}

// storedTimestampFormat keeps a fixed width so that text ordering in SQL
// matches chronological ordering.
const storedTimestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// timestampFormats lists the formats parseTimestamp accepts.
// The later entries cover rows edited by hand with the sqlite3 shell.
var timestampFormats = []string{
	storedTimestampFormat,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05",
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(storedTimestampFormat)
}

// parseTimestamp returns the zero time when no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
