package evaluator

import (
	"time"

	"StepSentinel/internal/model"
)

// Evaluate classifies one player's campaign compliance as of
// evaluationDate. Pure function: no I/O, deterministic.
//
// Days on or before the evaluation date are due. A series shorter than
// the day axis is treated as Missing for the days it lacks. A capped day
// floors at the reporting threshold, which conservatively meets any
// target at or below it.
func Evaluate(series []model.StepValue, campaignDays []time.Time, stepTarget int, evaluationDate time.Time) model.CompletionStatus {
	required := 0
	completed := 0
	for i, day := range campaignDays {
		if day.After(evaluationDate) {
			continue
		}
		required++

		v := model.Missing()
		if i < len(series) {
			v = series[i]
		}
		if v.Comparable() >= stepTarget {
			completed++
		}
	}

	if required == 0 {
		return model.NotYetDue()
	}
	if completed == required {
		return model.Complete(required)
	}
	return model.Partial(completed, required)
}
