package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/draughts-go/internal/config"
	"github.com/lgbarn/draughts-go/internal/worker"
)

// ResultWriter is the interface for writing replay results to output.
// Different implementations handle different formats (text, JSON).
type ResultWriter interface {
	// WriteResult writes a single replay result.
	WriteResult(r worker.ProcessResult) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer. Batch writers write pending output here.
	Close() error
}

// NewResultWriter picks the writer matching the replay configuration.
func NewResultWriter(w io.Writer, cfg *config.Config) ResultWriter {
	switch {
	case cfg.Replay.JSONLines:
		return NewJSONWriterSingle(w)
	case cfg.Replay.JSONFormat:
		return NewJSONWriter(w)
	}
	return NewTextWriter(w, cfg)
}

// Summary totals a replay run.
type Summary struct {
	Games      int `json:"games"`
	Failed     int `json:"failed"`
	Duplicates int `json:"duplicates"`
	Repeated   int `json:"repeated"`
	RedWins    int `json:"redWins"`
	BlackWins  int `json:"blackWins"`
	Unfinished int `json:"unfinished"`
}

// Summarize totals results.
func Summarize(results []worker.ProcessResult) Summary {
	var s Summary
	for _, r := range results {
		s.Games++
		if r.Duplicate {
			s.Duplicates++
		}
		if r.Error != nil {
			s.Failed++
			continue
		}
		a := r.Analysis
		if a == nil {
			continue
		}
		if a.HasRepetition() {
			s.Repeated++
		}
		switch {
		case !a.Snapshot.GameOver:
			s.Unfinished++
		case a.Snapshot.Winner == "Red":
			s.RedWins++
		default:
			s.BlackWins++
		}
	}
	return s
}

// TextWriter writes one report block per game.
type TextWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{w: w, cfg: cfg}
}

// WriteResult writes a game report.
func (tw *TextWriter) WriteResult(r worker.ProcessResult) error {
	fmt.Fprintf(tw.w, "game %d (%s:%d)", r.Game.Index, r.File, r.Game.Line)
	if r.Duplicate {
		fmt.Fprint(tw.w, " [duplicate]")
	}
	fmt.Fprintln(tw.w)

	ow := NewOutputWriter(tw.w, 80)
	for _, tok := range r.Game.Text {
		ow.Write(tok)
	}
	if len(r.Game.Text) > 0 {
		ow.NewLine()
	}

	if r.Error != nil {
		_, err := fmt.Fprintf(tw.w, "error: %v\n\n", r.Error)
		return err
	}
	if a := r.Analysis; a != nil {
		fmt.Fprintf(tw.w, "%s after %d turns\n", a.Snapshot.Message, a.Turns)
		fmt.Fprintf(tw.w, "captures %d, promotions %d, longest chain %d\n",
			a.Captures, a.Promotions, a.LongestChain)
		if a.HasRepetition() {
			fmt.Fprintf(tw.w, "position repeated %d times\n", a.MaxRepeats)
		}
		if a.Blocked {
			fmt.Fprintf(tw.w, "%s has no legal move\n", a.Snapshot.SideToMove)
		}
		if tw.cfg.Replay.ShowBoard {
			fmt.Fprint(tw.w, RenderBoard(a.Snapshot))
		}
	}
	_, err := fmt.Fprintln(tw.w)
	return err
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// WriteSummary writes the closing totals line of a text report.
func WriteSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "%d games: %d Red wins, %d Black wins, %d unfinished, %d failed",
		s.Games, s.RedWins, s.BlackWins, s.Unfinished, s.Failed)
	if s.Duplicates > 0 {
		fmt.Fprintf(w, ", %d duplicates", s.Duplicates)
	}
	if s.Repeated > 0 {
		fmt.Fprintf(w, ", %d with repetition", s.Repeated)
	}
	fmt.Fprintln(w)
}

// JSONWriter writes results in JSON format.
// It buffers results and writes them as one document on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	results []worker.ProcessResult
	single  bool // If true, write each result immediately instead of batching
}

// NewJSONWriter creates a batching JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// NewJSONWriterSingle creates a JSON writer that writes each result
// immediately, one document per line.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, single: true}
}

// WriteResult buffers a result (or writes it immediately in single mode).
func (jw *JSONWriter) WriteResult(r worker.ProcessResult) error {
	if jw.single {
		return json.NewEncoder(jw.w).Encode(ResultToJSON(r))
	}
	jw.results = append(jw.results, r)
	return nil
}

// Flush writes all buffered results.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.results) == 0 {
		return nil
	}
	err := OutputResultsJSON(jw.results, jw.w)
	jw.results = jw.results[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
