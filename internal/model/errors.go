package model

import "errors"

// Degradation taxonomy. Only ErrPipelineFailure ever reaches the user;
// the others are recovered by the stage that raised them.
var (
	ErrSourceUnavailable  = errors.New("holiday source unavailable")
	ErrRankingUnavailable = errors.New("ranking unavailable")
	ErrMediaUnavailable   = errors.New("media unavailable")
	ErrPipelineFailure    = errors.New("unexpected pipeline failure")
)

// Stage names used in logs, spans and StageError.
const (
	StageSource  = "source"
	StageRank    = "rank"
	StageMedia   = "media"
	StageCache   = "cache"
	StageUnknown = "unknown"
)

// StageError wraps an error with the pipeline stage that raised it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageName returns the failing stage.
func (e *StageError) StageName() string {
	return e.Stage
}
