package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/nao1215/guessgame/internal/model"
)

// Messages written to the player.
const (
	BannerMessage = "Guess the number!"
	PromptMessage = "Please input your guess."
)

// Default secret range. The upper bound is exclusive, so secrets are 1..100.
const (
	DefaultLow  uint64 = 1
	DefaultHigh uint64 = 101
)

// State is the state of a Loop.
type State int

const (
	// StatePlaying is the initial state. Every non-winning guess and every
	// rejected input keeps the loop here.
	StatePlaying State = iota

	// StateWon is entered on the winning guess and never left.
	StateWon
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// Loop drives one game session.
type Loop struct {
	source  SecretSource
	low     uint64
	high    uint64
	reader  *bufio.Reader
	out     io.Writer
	logger  *slog.Logger

	state   State
	session *model.Session
}

// Option configures a Loop.
type Option func(*Loop)

// WithRange sets the range [low, high) the secret is drawn from.
func WithRange(low, high uint64) Option {
	return func(l *Loop) {
		l.low = low
		l.high = high
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Loop reading guesses from in and writing messages to out.
func New(source SecretSource, in io.Reader, out io.Writer, opts ...Option) *Loop {
	l := &Loop{
		source:  source,
		low:     DefaultLow,
		high:    DefaultHigh,
		reader:  bufio.NewReader(in),
		out:     out,
		logger:  slog.Default(),
		state:   StatePlaying,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// State returns the current state of the loop.
func (l *Loop) State() State {
	return l.state
}

// Run plays the game until the player wins, the input fails, or ctx is done.
// The returned session is non-nil whenever the game started, even on error,
// so callers can inspect how far the player got.
//
// The context is checked between prompts; a blocked read is not interrupted.
func (l *Loop) Run(ctx context.Context) (*model.Session, error) {
	if l.state == StateWon {
		return l.session, ErrAlreadyWon
	}

	secret := l.source.Generate(l.low, l.high)
	l.session = model.NewSession(secret, l.low, l.high)
	l.logger.Debug("game started", "secret", secret, "low", l.low, "high", l.high)

	if err := l.println(BannerMessage); err != nil {
		return l.session, err
	}

	for l.state == StatePlaying {
		if err := ctx.Err(); err != nil {
			return l.session, err
		}
		if err := l.step(); err != nil {
			return l.session, err
		}
	}

	l.session.FinishedAt = time.Now()
	l.logger.Debug("game won",
		"attempts", l.session.Attempts(),
		"invalid_inputs", l.session.InvalidInputs,
		"duration", l.session.Duration(),
	)

	return l.session, nil
}

// step performs one prompt-read-parse-compare iteration.
func (l *Loop) step() error {
	if err := l.println(PromptMessage); err != nil {
		return err
	}

	line, err := l.readLine()
	if err != nil {
		return err
	}

	result := ParseGuess(line)
	if !result.OK {
		l.session.InvalidInputs++
		l.logger.Debug("ignoring input", "input", line)
		return nil
	}

	if err := l.println(fmt.Sprintf("You guessed: %d", result.Value)); err != nil {
		return err
	}

	outcome := l.session.AddGuess(result.Value)
	if err := l.println(outcome.Hint()); err != nil {
		return err
	}

	if outcome == model.OutcomeWin {
		l.state = StateWon
	}
	return nil
}

// readLine reads the next line without its terminator. Lines have no length limit.
// A final line without a newline is returned as is; end of input after it is
// reported as ErrReadInput wrapping io.EOF.
func (l *Loop) readLine() (string, error) {
	line, err := l.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (l *Loop) println(msg string) error {
	if _, err := fmt.Fprintln(l.out, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
