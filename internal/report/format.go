package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"StepSentinel/internal/model"
)

// DisplayStep renders a normalized step value for tables and exports:
// "-" for a missing day, "30k+" for a capped one, a thousands-separated
// count otherwise.
func DisplayStep(v model.StepValue) string {
	switch v.Kind {
	case model.StepCapped:
		return "30k+"
	case model.StepNumeric:
		return humanize.Comma(int64(v.Steps))
	default:
		return "-"
	}
}

// Row is one roster user's report line.
type Row struct {
	ID       string
	Username string
	Steps    []string // display form, one per campaign day
	Status   string
}

func (r Row) columns() []string {
	cols := make([]string, 0, len(r.Steps)+3)
	cols = append(cols, r.ID, r.Username)
	cols = append(cols, r.Steps...)
	return append(cols, r.Status)
}

// Header builds the column header: ID, username, one column per campaign
// day, and the final status column.
func Header(days []time.Time) []string {
	h := make([]string, 0, len(days)+3)
	h = append(h, "ID", "Username")
	for _, d := range days {
		h = append(h, d.Format("2006-01-02"))
	}
	return append(h, "Task Status")
}

// BuildRow assembles one roster user's report line, padding a short
// series with missing days so every row matches the header width.
func BuildRow(id string, p model.AggregatedPlayer, days []time.Time, status model.CompletionStatus) Row {
	steps := make([]string, len(days))
	for i := range days {
		v := model.Missing()
		if i < len(p.Series) {
			v = p.Series[i]
		}
		steps[i] = DisplayStep(v)
	}
	return Row{ID: id, Username: p.Username, Steps: steps, Status: status.String()}
}

// FormatCampaignInfo renders the campaign metadata block printed before
// the player table.
func FormatCampaignInfo(info *model.GameInfo) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Game Name: %s\n", info.Name))
	b.WriteString(fmt.Sprintf("Deposit Required: %s %s\n", formatAmount(info.Deposit), info.TokenSymbol))
	b.WriteString(fmt.Sprintf("Game Period: %s to %s\n",
		info.Start.Format("2006/01/02"), info.End.Format("2006/01/02")))
	b.WriteString(fmt.Sprintf("Step Target: %s\n", humanize.Comma(int64(info.StepTarget))))
	b.WriteString(fmt.Sprintf("Total Players: %d\n", info.TotalPlayers))
	return b.String()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
