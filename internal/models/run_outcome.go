package models

import "time"

// RunStage names the step of a run, used to tag where a failure happened.
type RunStage string

const (
	RunStageNone    RunStage = ""
	RunStageConfig  RunStage = "config"
	RunStageFetch   RunStage = "fetch"
	RunStageExtract RunStage = "extract"
	RunStageCheck   RunStage = "check"
)

// RunStatus is the final state of a run.
type RunStatus string

const (
	RunStatusClean       RunStatus = "clean"
	RunStatusBrokenFound RunStatus = "broken_found"
	RunStatusFailed      RunStatus = "failed"
	RunStatusAborted     RunStatus = "aborted"
)

// RunOutcome summarizes a single run.
type RunOutcome struct {
	TargetURL      string        `json:"target_url"`
	Status         RunStatus     `json:"status"`
	FailedStage    RunStage      `json:"failed_stage,omitempty"`
	Err            error         `json:"-"`
	ErrorCode      string        `json:"error_code,omitempty"`
	TotalResources int           `json:"total_resources"`
	BrokenURLs     []string      `json:"broken_urls,omitempty"`
	Notified       bool          `json:"notified"`
	Duration       time.Duration `json:"duration"`
}

// Failed reports whether the run ended at an error boundary.
func (o RunOutcome) Failed() bool {
	return o.Status == RunStatusFailed || o.Status == RunStatusAborted
}
