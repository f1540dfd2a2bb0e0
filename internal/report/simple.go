package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/guessgame/internal/model"
)

// SimpleWriter outputs human-readable text for terminal display.
type SimpleWriter struct {
	baseWriter

	// showGuesses lists every guess under each session.
	showGuesses bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithGuesses configures the writer to list the guesses of each session.
func WithGuesses(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showGuesses = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the history in human-readable format.
func (w *SimpleWriter) Write(history *model.History) (int, error) {
	var sb strings.Builder

	w.writeStats(&sb, history.Stats)
	w.writeSessions(&sb, history.Sessions)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeStats(sb *strings.Builder, stats model.Stats) {
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("GAME HISTORY\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "  Games won:        %s\n", w.number(stats.Games))
	fmt.Fprintf(sb, "  Total guesses:    %s\n", w.number(stats.TotalAttempts))
	if stats.Games > 0 {
		fmt.Fprintf(sb, "  Average guesses:  %s\n", w.average(stats.AverageAttempts()))
		fmt.Fprintf(sb, "  Best game:        %s\n", w.number(stats.BestAttempts))
		fmt.Fprintf(sb, "  Worst game:       %s\n", w.number(stats.WorstAttempts))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSessions(sb *strings.Builder, sessions []*model.Session) {
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	sb.WriteString("RECENT GAMES\n")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n\n")

	if len(sessions) == 0 {
		sb.WriteString("  No games recorded yet\n")
		return
	}

	for _, s := range sessions {
		fmt.Fprintf(sb, "  #%-5d %s  secret=%-4d guesses=%-3d invalid=%-3d %s (%s)\n",
			s.ID,
			s.StartedAt.Local().Format(dateFormat),
			s.Secret,
			s.Attempts(),
			s.InvalidInputs,
			resultLabel(s),
			durationLabel(s),
		)

		if w.showGuesses && len(s.Guesses) > 0 {
			parts := make([]string, len(s.Guesses))
			for i, g := range s.Guesses {
				parts[i] = strconv.FormatUint(g.Value, 10) + " " + symbol(g.Outcome)
			}
			fmt.Fprintf(sb, "         %s\n", strings.Join(parts, ", "))
		}
	}
}

// symbol gives a compact marker for an outcome.
func symbol(o model.Outcome) string {
	switch o {
	case model.OutcomeTooSmall:
		return "↑"
	case model.OutcomeTooBig:
		return "↓"
	case model.OutcomeWin:
		return "✓"
	default:
		return "?"
	}
}
