package model

import (
	"math/bits"
	"time"
)

// Guess is one accepted guess and the outcome it produced.
type Guess struct {
	Value   uint64  `json:"value"`
	Outcome Outcome `json:"outcome"`
}

// Session is one game from the banner to the win.
// Rejected inputs (text that is not an unsigned integer) are only counted,
// they never become a Guess.
type Session struct {
	// ID is assigned by the history database. Zero means not yet stored.
	ID int64 `json:"id"`

	// Secret is the value the player had to find.
	Secret uint64 `json:"secret"`

	// Low and High describe the range [Low, High) the secret was drawn from.
	Low  uint64 `json:"low"`
	High uint64 `json:"high"`

	// Guesses holds every accepted guess in the order it was made.
	Guesses []Guess `json:"guesses"`

	// InvalidInputs counts lines that could not be parsed as a guess.
	InvalidInputs int `json:"invalid_inputs"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// NewSession creates an empty session for the given secret and range.
func NewSession(secret, low, high uint64) *Session {
	return &Session{
		Secret:    secret,
		Low:       low,
		High:      high,
		Guesses:   make([]Guess, 0),
		StartedAt: time.Now(),
	}
}

// AddGuess records an accepted guess and returns its outcome.
func (s *Session) AddGuess(value uint64) Outcome {
	outcome := Compare(value, s.Secret)
	s.Guesses = append(s.Guesses, Guess{Value: value, Outcome: outcome})
	return outcome
}

// Attempts returns the number of accepted guesses.
func (s *Session) Attempts() int {
	return len(s.Guesses)
}

// Won reports whether the last accepted guess matched the secret.
func (s *Session) Won() bool {
	if len(s.Guesses) == 0 {
		return false
	}
	return s.Guesses[len(s.Guesses)-1].Outcome == OutcomeWin
}

// OptimalAttempts returns the worst-case number of guesses a player needs
// when every guess halves the remaining range.
func (s *Session) OptimalAttempts() int {
	if s.High <= s.Low {
		return 1
	}
	return bits.Len64(s.High - s.Low)
}

// Duration returns how long the session took.
// It returns zero for sessions that have not finished.
func (s *Session) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Stats aggregates finished sessions.
type Stats struct {
	Games         int `json:"games"`
	TotalAttempts int `json:"total_attempts"`
	BestAttempts  int `json:"best_attempts"`
	WorstAttempts int `json:"worst_attempts"`
}

// AverageAttempts returns the mean number of guesses per game.
func (s Stats) AverageAttempts() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalAttempts) / float64(s.Games)
}

// History is the input of the report writers.
type History struct {
	Sessions    []*Session `json:"sessions"`
	Stats       Stats      `json:"stats"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// NewHistory creates a History stamped with the current time.
func NewHistory(sessions []*Session, stats Stats) *History {
	if sessions == nil {
		sessions = make([]*Session, 0)
	}
	return &History{
		Sessions:    sessions,
		Stats:       stats,
		GeneratedAt: time.Now(),
	}
}
