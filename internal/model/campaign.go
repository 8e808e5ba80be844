package model

import "time"

// GameInfo holds campaign metadata, fetched once and read-only for the
// rest of the run.
type GameInfo struct {
	Code         string
	Name         string
	Deposit      float64
	TokenSymbol  string
	Start        time.Time
	End          time.Time
	StepTarget   int
	TotalPlayers int
	Link         string
}
