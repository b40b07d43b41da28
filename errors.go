package signoff

import "fmt"

// Pipeline stages.
const (
	StageBootstrap    = "bootstrap"
	StageAuthenticate = "authenticate"
)

// StageError reports the pipeline stage that aborted a run.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
