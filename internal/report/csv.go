package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"StepSentinel/internal/model"
)

// utf8BOM makes spreadsheet tools decode the export as UTF-8, keeping
// non-ASCII display names intact.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportCSV writes the campaign metadata block followed by the player
// rows to a timestamped CSV in dir, returning the file path.
func ExportCSV(dir string, info *model.GameInfo, header []string, rows []Row) (string, error) {
	filename := fmt.Sprintf("our_players_%s_%s.csv", info.Code, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return "", fmt.Errorf("write export BOM: %w", err)
	}

	w := csv.NewWriter(f)
	meta := [][]string{
		{"Game Information", ""},
		{"Game Code", info.Code},
		{"Game Name", info.Name},
		{"Game Link", info.Link},
		{"Deposit Amount", fmt.Sprintf("%s %s", formatAmount(info.Deposit), info.TokenSymbol)},
		{"Start Date", info.Start.Format("2006/01/02")},
		{"End Date", info.End.Format("2006/01/02")},
		{"Step Target", humanize.Comma(int64(info.StepTarget))},
		{"Total Players", strconv.Itoa(info.TotalPlayers)},
		{"", ""},
		{"Player Data", ""},
	}
	if err := w.WriteAll(meta); err != nil {
		return "", fmt.Errorf("write export metadata: %w", err)
	}

	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write export header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(r.columns()); err != nil {
			return "", fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush export: %w", err)
	}
	return path, nil
}
