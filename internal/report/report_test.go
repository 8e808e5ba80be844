package report

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"StepSentinel/internal/model"
)

func testDays() []time.Time {
	return []time.Time{
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
	}
}

func testInfo() *model.GameInfo {
	return &model.GameInfo{
		Code:         "abc",
		Name:         "春季挑战",
		Deposit:      50,
		TokenSymbol:  "USDC",
		Start:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StepTarget:   10000,
		TotalPlayers: 812,
		Link:         "https://app.moonwalk.fit/game/abc",
	}
}

func TestDisplayStep(t *testing.T) {
	tests := []struct {
		v    model.StepValue
		want string
	}{
		{model.Missing(), "-"},
		{model.Capped(), "30k+"},
		{model.Numeric(12000), "12,000"},
		{model.Numeric(950), "950"},
	}
	for _, tt := range tests {
		if got := DisplayStep(tt.v); got != tt.want {
			t.Errorf("DisplayStep(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestHeader(t *testing.T) {
	h := Header(testDays())
	want := []string{"ID", "Username", "2025-03-01", "2025-03-02", "2025-03-03", "Task Status"}
	if len(h) != len(want) {
		t.Fatalf("unexpected header length: %v", h)
	}
	for i := range want {
		if h[i] != want[i] {
			t.Errorf("header[%d] = %q, want %q", i, h[i], want[i])
		}
	}
}

func TestBuildRow_PadsShortSeries(t *testing.T) {
	p := model.AggregatedPlayer{
		Username: "alice",
		Series:   []model.StepValue{model.Numeric(12000)},
	}
	row := BuildRow("7", p, testDays(), model.Partial(1, 3))
	if len(row.Steps) != 3 {
		t.Fatalf("expected row padded to 3 days, got %d", len(row.Steps))
	}
	if row.Steps[0] != "12,000" || row.Steps[1] != "-" || row.Steps[2] != "-" {
		t.Errorf("unexpected step cells: %v", row.Steps)
	}
	if row.Status != "Failed(1/3)" {
		t.Errorf("unexpected status cell: %s", row.Status)
	}
}

func TestRenderTable(t *testing.T) {
	rows := []Row{{
		ID:       "7",
		Username: "alice",
		Steps:    []string{"12,000", "30k+", "-"},
		Status:   "Failed(2/3)",
	}}

	var buf bytes.Buffer
	RenderTable(&buf, Header(testDays()), rows)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "Task Status") {
		t.Errorf("unexpected header line: %q", lines[0])
	}
	for _, cell := range []string{"alice", "12,000", "30k+", "Failed(2/3)"} {
		if !strings.Contains(lines[1], cell) {
			t.Errorf("row missing %q: %q", cell, lines[1])
		}
	}
}

func TestFormatCampaignInfo(t *testing.T) {
	out := FormatCampaignInfo(testInfo())
	for _, want := range []string{
		"Game Name: 春季挑战",
		"Deposit Required: 50 USDC",
		"Game Period: 2025/03/01 to 2025/03/10",
		"Step Target: 10,000",
		"Total Players: 812",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("campaign info missing %q:\n%s", want, out)
		}
	}
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	rows := []Row{{
		ID:       "7",
		Username: "愛麗絲",
		Steps:    []string{"12,000", "30k+", "-"},
		Status:   "Failed(2/3)",
	}}

	path, err := ExportCSV(dir, testInfo(), Header(testDays()), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(strings.TrimPrefix(path, dir+"/"), "our_players_abc_") {
		t.Errorf("unexpected export name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, utf8BOM) {
		t.Error("export missing UTF-8 BOM")
	}

	body := string(data)
	for _, want := range []string{
		"Game Information",
		"Game Code,abc",
		"Deposit Amount,50 USDC",
		"Player Data",
		"愛麗絲",
		`"12,000"`,
		"30k+",
		"Failed(2/3)",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("export missing %q", want)
		}
	}
}
