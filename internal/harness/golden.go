package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// snapshot is the golden-file form of a scenario execution: the full trace
// plus the final render, serialized with stable field order.
type snapshot struct {
	Scenario      string       `json:"scenario"`
	Trace         []TraceEvent `json:"trace"`
	Render        []string     `json:"render"`
	ReplayMatches bool         `json:"replay_matches"`
}

// RunWithGolden executes a scenario and compares its trace snapshot against
// testdata/<scenario-name>.golden.
//
// Regenerate golden files with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(s)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(snapshot{
		Scenario:      s.Name,
		Trace:         result.Trace,
		Render:        result.Render,
		ReplayMatches: result.ReplayMatches,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("harness: marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	g := goldie.New(t)
	g.Assert(t, s.Name, data)
	return result, nil
}
