package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return s
}

func TestRunWithGolden_SetInvert(t *testing.T) {
	s := loadTestScenario(t, "set_invert")

	result, err := RunWithGolden(t, s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.True(t, result.ReplayMatches)
}

func TestRunWithGolden_SequenceMedian(t *testing.T) {
	s := loadTestScenario(t, "sequence_median")

	result, err := RunWithGolden(t, s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, []string{"#ffd7d7"}, result.Render)
}

func TestRun_AdditiveReverse(t *testing.T) {
	s := loadTestScenario(t, "additive_reverse")

	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, []string{"#000000"}, result.Render)
	assert.True(t, result.ReplayMatches)
}

func TestRun_NoopUndoRedoTraced(t *testing.T) {
	s := &Scenario{
		Name: "noop-ops",
		Grid: GridSpec{Style: "SET", Width: 1, Height: 1},
		Script: []Step{
			{Undo: true},
			{Redo: true},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)

	require.Len(t, result.Trace, 2)
	assert.Equal(t, TraceEvent{Type: "undo", Noop: true}, result.Trace[0])
	assert.Equal(t, TraceEvent{Type: "redo", Noop: true}, result.Trace[1])
	assert.True(t, result.Pass)
}

func TestRun_CollectsAssertionFailures(t *testing.T) {
	s := &Scenario{
		Name: "wrong-expectations",
		Grid: GridSpec{Style: "SET", Width: 1, Height: 1},
		Script: []Step{
			{Draw: &DrawOp{Layer: "black", Points: [][]int{{0, 0}}}},
		},
		Cells: []CellAssertion{
			{X: 0, Y: 0, Colour: "#ff00ff"},
			{X: 5, Y: 5, Colour: "#000000"},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "want #ff00ff, got #000000")
	assert.Contains(t, result.Errors[1], "outside 1x1 grid")
}

func TestRun_UnknownLayerAborts(t *testing.T) {
	s := &Scenario{
		Name: "bad-layer",
		Grid: GridSpec{Style: "SET", Width: 1, Height: 1},
		Script: []Step{
			{Draw: &DrawOp{Layer: "chartreuse", Points: [][]int{{0, 0}}}},
		},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown layer")
}

func TestRun_UnknownStyleAborts(t *testing.T) {
	s := &Scenario{
		Name: "bad-style",
		Grid: GridSpec{Style: "SPLATTER", Width: 1, Height: 1},
	}

	_, err := Run(s)
	require.Error(t, err)
}

func TestLoadScenario_Validation(t *testing.T) {
	write := func(t *testing.T, body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "scenario.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing name",
			body:    "grid:\n  style: SET\n  width: 1\n  height: 1\n",
			wantErr: "missing name",
		},
		{
			name:    "bad dimensions",
			body:    "name: x\ngrid:\n  style: SET\n  width: 0\n  height: 1\n",
			wantErr: "invalid grid dimensions",
		},
		{
			name:    "empty step",
			body:    "name: x\ngrid:\n  style: SET\n  width: 1\n  height: 1\nscript:\n  - {}\n",
			wantErr: "exactly one operation",
		},
		{
			name: "two ops in one step",
			body: "name: x\ngrid:\n  style: SET\n  width: 1\n  height: 1\n" +
				"script:\n  - special: true\n    undo: true\n",
			wantErr: "exactly one operation",
		},
		{
			name: "draw without points",
			body: "name: x\ngrid:\n  style: SET\n  width: 1\n  height: 1\n" +
				"script:\n  - draw:\n      layer: black\n",
			wantErr: "draw without points",
		},
		{
			name: "malformed point",
			body: "name: x\ngrid:\n  style: SET\n  width: 1\n  height: 1\n" +
				"script:\n  - draw:\n      layer: black\n      points: [[1, 2, 3]]\n",
			wantErr: "not an [x, y] pair",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(write(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scenario")
}

func TestLoadScenario_RoundTrip(t *testing.T) {
	s := loadTestScenario(t, "set_invert")

	assert.Equal(t, "set_invert", s.Name)
	assert.Equal(t, "SET", s.Grid.Style)
	require.Len(t, s.Script, 3)
	require.NotNil(t, s.Script[0].Draw)
	assert.Equal(t, "black", s.Script[0].Draw.Layer)
	assert.True(t, s.Script[1].Special)
	assert.True(t, s.Script[2].Undo)
	require.Len(t, s.Cells, 2)
}
