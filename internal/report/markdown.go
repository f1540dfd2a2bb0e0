package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/guessgame/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs history in Markdown format for sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the history in Markdown format.
func (w *MarkdownWriter) Write(history *model.History) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Guess the Number: Game History")
	md.PlainText("")

	w.writeStats(md, history)
	w.writeSessions(md, history.Sessions)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeStats(md *markdown.Markdown, history *model.History) {
	stats := history.Stats

	md.H2("Statistics")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Games won", w.number(stats.Games)},
			{"Total guesses", w.number(stats.TotalAttempts)},
			{"Average guesses", w.average(stats.AverageAttempts())},
			{"Best game", w.number(stats.BestAttempts)},
			{"Worst game", w.number(stats.WorstAttempts)},
			{"Generated", history.GeneratedAt.Format(dateFormat)},
		},
	})
	md.PlainText("")

	won, over := searchBoundCounts(history.Sessions)
	switch {
	case stats.Games == 0:
		md.Note("No games recorded yet. Play with `guessgame --history` to start recording.")
	case won == 0:
	case over == 0:
		md.Tip(fmt.Sprintf("All %d won games below finished within the guesses needed when halving the range each time.", won))
	default:
		md.Importantf("%d of %d won games below took more guesses than halving the range each time would need.", over, won)
	}
	md.PlainText("")

	counts := outcomeCounts(history)
	if len(counts) > 0 {
		w.writePieChart(md, counts)
	}
}

// searchBoundCounts counts the won sessions and those that needed more
// guesses than a binary search over their range.
func searchBoundCounts(sessions []*model.Session) (won, over int) {
	for _, s := range sessions {
		if !s.Won() {
			continue
		}
		won++
		if s.Attempts() > s.OptimalAttempts() {
			over++
		}
	}
	return won, over
}

func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, counts map[model.Outcome]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Guess Outcomes"),
		piechart.WithShowData(true),
	)

	for _, o := range []model.Outcome{model.OutcomeTooSmall, model.OutcomeTooBig, model.OutcomeWin} {
		if counts[o] > 0 {
			chart.LabelAndIntValue(outcomeLabel(o), uint64(counts[o])) //nolint:gosec // counts are non-negative
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeSessions(md *markdown.Markdown, sessions []*model.Session) {
	md.H2("Recent Games")
	md.PlainText("")

	if len(sessions) == 0 {
		md.PlainText("No games recorded yet.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.StartedAt.Local().Format(dateFormat),
			strconv.FormatUint(s.Secret, 10),
			strconv.Itoa(s.Attempts()),
			strconv.Itoa(s.InvalidInputs),
			durationLabel(s),
			resultLabel(s),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Started", "Secret", "Guesses", "Invalid", "Duration", "Result"},
		Rows:   rows,
	})
	md.PlainText("")
}
