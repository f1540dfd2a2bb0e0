package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/guessgame/internal/model"
)

// JSONWriter outputs history in JSON format for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// jsonHistory adds derived values that are methods on the model.
type jsonHistory struct {
	*model.History
	AverageAttempts float64 `json:"average_attempts"`
}

// Write outputs the history in JSON format.
func (w *JSONWriter) Write(history *model.History) (int, error) {
	v := jsonHistory{
		History:         history,
		AverageAttempts: history.Stats.AverageAttempts(),
	}

	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
