package model

import "fmt"

// StatusKind discriminates CompletionStatus variants.
type StatusKind int

const (
	StatusNotYetDue StatusKind = iota
	StatusComplete
	StatusPartial
)

// CompletionStatus classifies a player's campaign compliance as of the
// evaluation date. For StatusPartial, CompletedDays < RequiredDays.
type CompletionStatus struct {
	Kind          StatusKind
	CompletedDays int
	RequiredDays  int
}

// NotYetDue marks a campaign with no elapsed days relative to the
// evaluation date.
func NotYetDue() CompletionStatus { return CompletionStatus{Kind: StatusNotYetDue} }

// Complete marks a player who met the target on every elapsed day.
func Complete(required int) CompletionStatus {
	return CompletionStatus{Kind: StatusComplete, CompletedDays: required, RequiredDays: required}
}

// Partial marks a player with a deficit: completed < required.
func Partial(completed, required int) CompletionStatus {
	return CompletionStatus{Kind: StatusPartial, CompletedDays: completed, RequiredDays: required}
}

// String renders the status the way reports display it.
func (s CompletionStatus) String() string {
	switch s.Kind {
	case StatusComplete:
		return "Complete"
	case StatusPartial:
		return fmt.Sprintf("Failed(%d/%d)", s.CompletedDays, s.RequiredDays)
	default:
		return "-"
	}
}
