package tracker

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"StepSentinel/internal/aggregator"
	"StepSentinel/internal/evaluator"
	"StepSentinel/internal/fetcher"
	"StepSentinel/internal/model"
	"StepSentinel/internal/recorder"
	"StepSentinel/internal/report"
	"StepSentinel/internal/roster"
)

// Tracker wires one full campaign report run:
// metadata -> paginated fetch -> aggregate -> evaluate -> report -> record.
type Tracker struct {
	Client    fetcher.Client
	Paginator *fetcher.Paginator
	Roster    *roster.Roster
	Recorder  recorder.Recorder
	OutputDir string

	// WebInfo is the lower-priority metadata fallback, tried when the
	// overview API fails. Optional.
	WebInfo func(campaignCode string) (*model.GameInfo, error)

	Out io.Writer        // console sink, defaults to os.Stdout
	Now func() time.Time // evaluation clock, defaults to time.Now
}

// Run executes a single batch run for the campaign. Only input-level
// failures return an error: unreachable metadata, no player data, no
// discoverable day axis, or an empty intersection with the roster.
func (t *Tracker) Run(campaignCode string) error {
	out := t.out()
	now := t.now()

	info, err := t.fetchCampaignInfo(campaignCode)
	if err != nil {
		return fmt.Errorf("campaign metadata: %w", err)
	}
	fmt.Fprintf(out, "\nGame Information:\n%s", report.FormatCampaignInfo(info))

	raw, partial := t.Paginator.FetchAllPlayers(campaignCode)
	if partial {
		log.Printf("[WARN] player list may be incomplete: %d records fetched", len(raw))
	}
	if len(raw) == 0 {
		return fmt.Errorf("no player data fetched for campaign %s", campaignCode)
	}
	log.Printf("[INFO] final fetched %d players' data", len(raw))

	days := aggregator.CampaignDays(raw)
	if len(days) == 0 {
		return fmt.Errorf("no campaign days discoverable from fetched data")
	}

	players := aggregator.Aggregate(raw)
	log.Printf("[INFO] aggregated %d players over %d campaign days", len(players), len(days))

	header := report.Header(days)
	evalDate := now()
	var rows []report.Row
	var statuses []recorder.PlayerStatus
	for _, entry := range t.Roster.Entries {
		p, ok := players[entry.Name]
		if !ok {
			log.Printf("[WARN] user %s not found among fetched players", entry.Name)
			continue
		}
		status := evaluator.Evaluate(p.Series, days, info.StepTarget, evalDate)
		rows = append(rows, report.BuildRow(entry.ID, p, days, status))
		statuses = append(statuses, recorder.PlayerStatus{
			RosterID:           entry.ID,
			Username:           p.Username,
			Status:             status,
			TotalCompletedDays: p.TotalCompletedDays,
			HighestSteps:       p.HighestSteps,
		})
	}
	if len(rows) == 0 {
		return fmt.Errorf("no roster users found among %d fetched players", len(players))
	}

	fmt.Fprintf(out, "\nPlayer Step Data (%d users):\n", len(rows))
	report.RenderTable(out, header, rows)

	path, err := report.ExportCSV(t.OutputDir, info, header, rows)
	if err != nil {
		return fmt.Errorf("export report: %w", err)
	}
	fmt.Fprintf(out, "\nData saved to: %s\n", path)

	t.record(info, campaignCode, len(raw), partial, evalDate, statuses)
	return nil
}

// fetchCampaignInfo tries the overview API first and falls back to the
// web page scrape before giving up.
func (t *Tracker) fetchCampaignInfo(campaignCode string) (*model.GameInfo, error) {
	info, err := t.Client.FetchCampaignOverview(campaignCode)
	if err == nil {
		return info, nil
	}
	log.Printf("[WARN] campaign overview failed: %v", err)

	if t.WebInfo != nil {
		info, webErr := t.WebInfo(campaignCode)
		if webErr == nil {
			log.Println("[INFO] campaign metadata recovered from game page")
			return info, nil
		}
		log.Printf("[WARN] game page fallback failed: %v", webErr)
	}
	return nil, err
}

// record persists the run outcome. Recording failures are logged, never
// fatal: the report has already been produced.
func (t *Tracker) record(info *model.GameInfo, campaignCode string, fetched int, partial bool, evalDate time.Time, statuses []recorder.PlayerStatus) {
	if t.Recorder == nil {
		return
	}
	runID := uuid.NewString()
	if err := t.Recorder.RecordRun(&recorder.RunSnapshot{
		RunID:          runID,
		CampaignCode:   campaignCode,
		CampaignName:   info.Name,
		StepTarget:     info.StepTarget,
		TotalPlayers:   info.TotalPlayers,
		FetchedPlayers: fetched,
		Partial:        partial,
		EvaluatedAt:    evalDate,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
		return
	}
	for i := range statuses {
		statuses[i].RunID = runID
		if err := t.Recorder.RecordPlayerStatus(&statuses[i]); err != nil {
			log.Printf("[ERROR] record player status for %s: %v", statuses[i].Username, err)
		}
	}
}

func (t *Tracker) out() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return os.Stdout
}

func (t *Tracker) now() func() time.Time {
	if t.Now != nil {
		return t.Now
	}
	return time.Now
}
