package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/build"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/tburrows/impasto/internal/canvas"
)

// Script is a painting session described in CUE: a canvas configuration and
// an ordered list of actions to perform on it.
type Script struct {
	Canvas    CanvasSpec     `json:"canvas"`
	Timestamp int64          `json:"timestamp,omitempty"`
	Actions   []ScriptAction `json:"actions"`
}

// CanvasSpec configures the grid a script paints on.
type CanvasSpec struct {
	Style  string `json:"style"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// Capacity bounds ADD-style cell queues; 0 selects the default.
	Capacity int `json:"capacity,omitempty"`
}

// ScriptAction is one scripted operation. Exactly one field may be set.
type ScriptAction struct {
	Draw    *ScriptDraw `json:"draw,omitempty"`
	Special bool        `json:"special,omitempty"`
	Undo    bool        `json:"undo,omitempty"`
	Redo    bool        `json:"redo,omitempty"`
}

// ScriptDraw paints one layer onto one or more cells as a single action.
type ScriptDraw struct {
	Layer  string  `json:"layer"`
	Points [][]int `json:"points"`
}

// LoadError represents an error that occurred during script loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E002" // Path not found
	ErrCodeLoadFailed  = "E003" // CUE load failed
	ErrCodeBuildFailed = "E004" // CUE build failed
	ErrCodeDecode      = "E005" // CUE value does not decode into a script
	ErrCodeBadScript   = "E006" // Script failed validation
)

// LoadScript loads a paint script from a CUE file or a directory of CUE
// files and validates it.
func LoadScript(path string) (*Script, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("script not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing script: %v", err)}
	}

	// Load CUE instances: a directory loads as a package, a single file
	// loads on its own.
	ctx := cuecontext.New()
	var instances []*build.Instance
	if info.IsDir() {
		instances = load.Instances([]string{"."}, &load.Config{Dir: path})
	} else {
		instances = load.Instances([]string{path}, nil)
	}
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	var script Script
	if err := decodeScript(value, &script); err != nil {
		return nil, err
	}
	if err := script.validate(); err != nil {
		return nil, &LoadError{Code: ErrCodeBadScript, Message: err.Error()}
	}
	return &script, nil
}

func decodeScript(value cue.Value, script *Script) error {
	canvasVal := value.LookupPath(cue.ParsePath("canvas"))
	if !canvasVal.Exists() {
		return &LoadError{Code: ErrCodeDecode, Message: "script has no canvas"}
	}
	if err := canvasVal.Decode(&script.Canvas); err != nil {
		return &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("decoding canvas: %v", err)}
	}

	tsVal := value.LookupPath(cue.ParsePath("timestamp"))
	if tsVal.Exists() {
		if err := tsVal.Decode(&script.Timestamp); err != nil {
			return &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("decoding timestamp: %v", err)}
		}
	}

	actionsVal := value.LookupPath(cue.ParsePath("actions"))
	if actionsVal.Exists() {
		if err := actionsVal.Decode(&script.Actions); err != nil {
			return &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("decoding actions: %v", err)}
		}
	}
	return nil
}

func (s *Script) validate() error {
	if _, err := canvas.ParseDrawStyle(s.Canvas.Style); err != nil {
		return err
	}
	if s.Canvas.Width <= 0 || s.Canvas.Height <= 0 {
		return fmt.Errorf("invalid canvas dimensions %dx%d", s.Canvas.Width, s.Canvas.Height)
	}
	for i, a := range s.Actions {
		set := 0
		if a.Draw != nil {
			set++
			if a.Draw.Layer == "" {
				return fmt.Errorf("actions[%d]: draw without a layer", i)
			}
			if len(a.Draw.Points) == 0 {
				return fmt.Errorf("actions[%d]: draw without points", i)
			}
			for _, p := range a.Draw.Points {
				if len(p) != 2 {
					return fmt.Errorf("actions[%d]: point %v is not an [x, y] pair", i, p)
				}
			}
		}
		if a.Special {
			set++
		}
		if a.Undo {
			set++
		}
		if a.Redo {
			set++
		}
		if set != 1 {
			return fmt.Errorf("actions[%d]: exactly one operation per action, got %d", i, set)
		}
	}
	return nil
}
