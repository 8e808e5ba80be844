package aggregator

import (
	"log"
	"strings"
	"time"

	"StepSentinel/internal/model"
)

// Aggregate normalizes raw player records into per-user series and
// summary statistics. Records without a username are skipped with a log
// line; a malformed record never aborts the batch. Duplicate usernames
// overwrite (last wins) — the API should not emit them.
func Aggregate(raw []model.RawPlayerRecord) map[string]model.AggregatedPlayer {
	players := make(map[string]model.AggregatedPlayer, len(raw))
	for i, rec := range raw {
		if rec.Username == "" {
			log.Printf("[WARN] skipping player %d: no username", i+1)
			continue
		}

		series := make([]model.StepValue, len(rec.Entries))
		completed := 0
		highest := 0
		for j, entry := range rec.Entries {
			v := Normalize(entry.Steps)
			series[j] = v
			if v.Completed() {
				completed++
			}
			if v.Kind == model.StepNumeric && v.Steps > highest {
				highest = v.Steps
			}
		}

		players[rec.Username] = model.AggregatedPlayer{
			Username:           rec.Username,
			Series:             series,
			TotalCompletedDays: completed,
			HighestSteps:       highest,
		}
	}
	return players
}

// Normalize converts one raw step value into its canonical form. The API
// mixes plain numbers, a pre-formatted overflow marker, and absent values
// in the same field.
func Normalize(raw interface{}) model.StepValue {
	switch v := raw.(type) {
	case nil:
		return model.Missing()
	case string:
		if strings.Contains(v, "k+") {
			return model.Capped()
		}
		return model.Missing()
	case float64:
		return normalizeCount(int(v))
	case int:
		return normalizeCount(v)
	default:
		return model.Missing()
	}
}

func normalizeCount(n int) model.StepValue {
	switch {
	case n <= 0:
		return model.Missing()
	case n >= model.CapThreshold:
		return model.Capped()
	default:
		return model.Numeric(n)
	}
}

// CampaignDays derives the campaign day axis from the first fetched
// record. Every player's entries are aligned to the same days, so the
// first one is authoritative.
func CampaignDays(raw []model.RawPlayerRecord) []time.Time {
	if len(raw) == 0 {
		return nil
	}
	days := make([]time.Time, len(raw[0].Entries))
	for i, e := range raw[0].Entries {
		days[i] = e.Day
	}
	return days
}
