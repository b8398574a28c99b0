// Package harness provides a conformance testing framework for painting
// sessions.
//
// Scenarios are YAML files declaring a grid, a script of operations, and
// assertions on the final render. The harness executes the script through a
// real session engine with deterministic action IDs and an in-memory action
// log, then checks the assertions and verifies that replaying the log
// reproduces the live render. Traces can additionally be compared against
// golden files.
package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies the scenario; it is also the golden file
	// base name.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description,omitempty"`

	// Grid configures the session's grid.
	Grid GridSpec `yaml:"grid"`

	// Timestamp is the render timestamp; zero unless animated layers are
	// under test.
	Timestamp int64 `yaml:"timestamp,omitempty"`

	// Script is the ordered list of operations to perform.
	Script []Step `yaml:"script"`

	// Cells asserts final colours of individual cells (rendered over a
	// white start colour).
	Cells []CellAssertion `yaml:"cells,omitempty"`
}

// GridSpec configures the grid under test.
type GridSpec struct {
	Style  string `yaml:"style"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// Capacity bounds ADD-style cell queues; 0 selects the default.
	Capacity int `yaml:"capacity,omitempty"`
}

// Step is one script operation. Exactly one field may be set.
type Step struct {
	Draw    *DrawOp `yaml:"draw,omitempty"`
	Special bool    `yaml:"special,omitempty"`
	Undo    bool    `yaml:"undo,omitempty"`
	Redo    bool    `yaml:"redo,omitempty"`
}

// DrawOp paints one layer onto one or more cells as a single action.
type DrawOp struct {
	Layer  string  `yaml:"layer"`
	Points [][]int `yaml:"points"`
}

// CellAssertion pins the final colour of one cell, as a hex triplet.
type CellAssertion struct {
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Colour string `yaml:"colour"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("harness: read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("harness: parse scenario %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("harness: scenario %s: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("missing name")
	}
	if s.Grid.Width <= 0 || s.Grid.Height <= 0 {
		return fmt.Errorf("invalid grid dimensions %dx%d", s.Grid.Width, s.Grid.Height)
	}
	for i, step := range s.Script {
		set := 0
		if step.Draw != nil {
			set++
			if step.Draw.Layer == "" {
				return fmt.Errorf("script[%d]: draw without a layer", i)
			}
			if len(step.Draw.Points) == 0 {
				return fmt.Errorf("script[%d]: draw without points", i)
			}
			for _, p := range step.Draw.Points {
				if len(p) != 2 {
					return fmt.Errorf("script[%d]: point %v is not an [x, y] pair", i, p)
				}
			}
		}
		if step.Special {
			set++
		}
		if step.Undo {
			set++
		}
		if step.Redo {
			set++
		}
		if set != 1 {
			return fmt.Errorf("script[%d]: exactly one operation per step, got %d", i, set)
		}
	}
	return nil
}
