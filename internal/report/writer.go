package report

import (
	"io"
	"strings"
	"time"

	"github.com/nao1215/guessgame/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// dateFormat is used for session start times in every writer.
const dateFormat = "2006-01-02 15:04:05 MST"

// Writer defines the interface for history output.
type Writer interface {
	// Write outputs the history to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(history *model.History) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output  io.Writer
	printer *message.Printer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{
		output:  output,
		printer: message.NewPrinter(language.English),
	}
}

// number formats an integer with thousands separators.
func (b baseWriter) number(n int) string {
	return b.printer.Sprintf("%d", n)
}

// average formats a mean value with two decimals.
func (b baseWriter) average(v float64) string {
	return b.printer.Sprintf("%.2f", v)
}

// outcomeLabel turns "too_small" into "Too Small".
func outcomeLabel(o model.Outcome) string {
	return cases.Title(language.English).String(strings.ReplaceAll(o.String(), "_", " "))
}

// resultLabel describes how a session ended.
func resultLabel(s *model.Session) string {
	if s.Won() {
		return "won"
	}
	return "abandoned"
}

// durationLabel rounds a session duration for display.
func durationLabel(s *model.Session) string {
	if s.FinishedAt.IsZero() {
		return "-"
	}
	return s.Duration().Round(time.Second).String()
}

// outcomeCounts counts every accepted guess in the history by outcome.
func outcomeCounts(history *model.History) map[model.Outcome]int {
	counts := make(map[model.Outcome]int, 3)
	for _, s := range history.Sessions {
		for _, g := range s.Guesses {
			counts[g.Outcome]++
		}
	}
	return counts
}
