package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/draughts-go/internal/engine"
	"github.com/lgbarn/draughts-go/internal/worker"
)

// JSONResult represents a replayed game in JSON format.
type JSONResult struct {
	Game         int              `json:"game"`
	File         string           `json:"file,omitempty"`
	Line         int              `json:"line,omitempty"`
	Moves        []string         `json:"moves"`
	Turns        int              `json:"turns"`
	Captures     int              `json:"captures"`
	Promotions   int              `json:"promotions"`
	LongestChain int              `json:"longestChain"`
	Repetition   bool             `json:"repetition,omitempty"`
	Duplicate    bool             `json:"duplicate,omitempty"`
	Blocked      bool             `json:"blocked,omitempty"`
	Error        string           `json:"error,omitempty"`
	Final        *engine.Snapshot `json:"final,omitempty"`
}

// JSONOutput holds multiple results for array output.
type JSONOutput struct {
	Games   []*JSONResult `json:"games"`
	Summary Summary       `json:"summary"`
}

// ResultToJSON converts a replay result to JSON form.
func ResultToJSON(r worker.ProcessResult) *JSONResult {
	jr := &JSONResult{
		Game:      r.Game.Index,
		File:      r.File,
		Line:      r.Game.Line,
		Moves:     append([]string{}, r.Game.Text...),
		Duplicate: r.Duplicate,
	}
	if r.Error != nil {
		jr.Error = r.Error.Error()
	}
	if a := r.Analysis; a != nil {
		jr.Turns = a.Turns
		jr.Captures = a.Captures
		jr.Promotions = a.Promotions
		jr.LongestChain = a.LongestChain
		jr.Repetition = a.HasRepetition()
		jr.Blocked = a.Blocked
		final := a.Snapshot
		jr.Final = &final
	}
	return jr
}

// OutputResultsJSON writes results and their summary as one JSON document.
func OutputResultsJSON(results []worker.ProcessResult, w io.Writer) error {
	out := &JSONOutput{Games: make([]*JSONResult, len(results)), Summary: Summarize(results)}
	for i, r := range results {
		out.Games[i] = ResultToJSON(r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// OutputSnapshotJSON writes a single match snapshot.
func OutputSnapshotJSON(s engine.Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
