package model

import "time"

// RawStepEntry is one day's step report as returned by the API.
// Steps is either a JSON number, a pre-formatted overflow string
// (e.g. "30k+"), or nil when the day has no report.
type RawStepEntry struct {
	Day   time.Time
	Steps interface{}
}

// RawPlayerRecord is a single player's fetched data, aligned to campaign
// days in entry order. Discarded after aggregation.
type RawPlayerRecord struct {
	Username string
	Entries  []RawStepEntry
}

// AggregatedPlayer is the normalized per-user view used for evaluation
// and reporting. Series is aligned 1:1 with campaign days.
type AggregatedPlayer struct {
	Username           string
	Series             []StepValue
	TotalCompletedDays int
	HighestSteps       int
}
