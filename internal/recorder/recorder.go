package recorder

import (
	"time"

	"StepSentinel/internal/model"
)

// RunSnapshot holds the outcome of one tracker run.
type RunSnapshot struct {
	RunID          string
	CampaignCode   string
	CampaignName   string
	StepTarget     int
	TotalPlayers   int
	FetchedPlayers int
	Partial        bool
	EvaluatedAt    time.Time
}

// PlayerStatus is one roster user's evaluated result within a run.
type PlayerStatus struct {
	RunID              string
	RosterID           string
	Username           string
	Status             model.CompletionStatus
	TotalCompletedDays int
	HighestSteps       int
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordRun(snap *RunSnapshot) error
	RecordPlayerStatus(st *PlayerStatus) error
	Close() error
}
