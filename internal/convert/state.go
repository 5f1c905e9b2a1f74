package convert

import "fmt"

// State is the progress of one run.
type State string

const (
	StateStart    State = "start"
	StateLoaded   State = "loaded"
	StateParsed   State = "parsed"
	StateRendered State = "rendered"
	StateWritten  State = "written"
	StateFailed   State = "failed"
)

// Step names the stage a run failed in.
type Step string

const (
	StepLoad   Step = "open"
	StepParse  Step = "parse"
	StepRender Step = "render"
	StepWrite  Step = "write"
)

// StageError wraps the error of the failing stage.
type StageError struct {
	Step Step
	Path string
	Err  error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Diagnostic(), e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Diagnostic is the one-line console message, e.g. "parse file x.rs failed".
func (e *StageError) Diagnostic() string {
	return fmt.Sprintf("%s file %s failed", e.Step, e.Path)
}
