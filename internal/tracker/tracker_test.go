package tracker

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"StepSentinel/internal/fetcher"
	"StepSentinel/internal/model"
	"StepSentinel/internal/recorder"
	"StepSentinel/internal/roster"
)

// captureRecorder collects recorded snapshots for assertions.
type captureRecorder struct {
	runs     []recorder.RunSnapshot
	statuses []recorder.PlayerStatus
}

func (c *captureRecorder) RecordRun(snap *recorder.RunSnapshot) error {
	c.runs = append(c.runs, *snap)
	return nil
}

func (c *captureRecorder) RecordPlayerStatus(st *recorder.PlayerStatus) error {
	c.statuses = append(c.statuses, *st)
	return nil
}

func (c *captureRecorder) Close() error { return nil }

func testDays() []time.Time {
	return []time.Time{
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
	}
}

func testPlayer(name string, steps ...interface{}) model.RawPlayerRecord {
	days := testDays()
	rec := model.RawPlayerRecord{Username: name}
	for i, s := range steps {
		rec.Entries = append(rec.Entries, model.RawStepEntry{Day: days[i], Steps: s})
	}
	return rec
}

func testClient() *fetcher.MockClient {
	return &fetcher.MockClient{
		Players: []model.RawPlayerRecord{
			testPlayer("alice", float64(12000), "30k+", nil),
			testPlayer("bob", float64(8000), float64(9000), float64(15000)),
			testPlayer("mallory", nil, nil, nil),
		},
		Info: &model.GameInfo{
			Code:         "abc",
			Name:         "Spring Sprint",
			TokenSymbol:  "USDC",
			Start:        testDays()[0],
			End:          testDays()[2],
			StepTarget:   10000,
			TotalPlayers: 3,
			Link:         "https://app.moonwalk.fit/game/abc",
		},
	}
}

func newTestTracker(client *fetcher.MockClient, ros *roster.Roster, rec recorder.Recorder, dir string) (*Tracker, *bytes.Buffer) {
	pag := fetcher.NewPaginator(client, fetcher.RetryPolicy{MaxRetries: 3, Delay: time.Second}, 200*time.Millisecond)
	pag.Sleep = func(time.Duration) {}

	var buf bytes.Buffer
	t := &Tracker{
		Client:    client,
		Paginator: pag,
		Roster:    ros,
		Recorder:  rec,
		OutputDir: dir,
		Out:       &buf,
		Now:       func() time.Time { return time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC) },
	}
	return t, &buf
}

func TestRun(t *testing.T) {
	client := testClient()
	ros := &roster.Roster{Entries: []roster.Entry{
		{Name: "alice", ID: "1"},
		{Name: "bob", ID: "2"},
		{Name: "carol", ID: "3"}, // not among fetched players
	}}
	capture := &captureRecorder{}
	dir := t.TempDir()

	tr, out := newTestTracker(client, ros, capture, dir)
	if err := tr.Run("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Game Name: Spring Sprint",
		"Player Step Data (2 users)",
		"alice",
		"bob",
		"Failed(2/3)", // alice: day 1 numeric + day 2 capped met, day 3 missing
		"Failed(1/3)", // bob meets the target only on day 3
	} {
		if !strings.Contains(text, want) {
			t.Errorf("console output missing %q:\n%s", want, text)
		}
	}

	matches, err := filepath.Glob(filepath.Join(dir, "our_players_abc_*.csv"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one export, got %v (err %v)", matches, err)
	}

	if len(capture.runs) != 1 {
		t.Fatalf("expected 1 run record, got %d", len(capture.runs))
	}
	run := capture.runs[0]
	if run.CampaignCode != "abc" || run.FetchedPlayers != 3 || run.Partial {
		t.Errorf("unexpected run snapshot: %+v", run)
	}
	if len(capture.statuses) != 2 {
		t.Fatalf("expected 2 player statuses, got %d", len(capture.statuses))
	}
	for _, st := range capture.statuses {
		if st.RunID != run.RunID {
			t.Errorf("player status not linked to run: %+v", st)
		}
	}
}

func TestRun_MetadataFallback(t *testing.T) {
	client := testClient()
	info := client.Info
	client.Info = nil // overview API down

	ros := &roster.Roster{Entries: []roster.Entry{{Name: "alice", ID: "1"}}}
	tr, out := newTestTracker(client, ros, &captureRecorder{}, t.TempDir())
	tr.WebInfo = func(code string) (*model.GameInfo, error) {
		if code != "abc" {
			return nil, fmt.Errorf("unknown campaign %s", code)
		}
		return info, nil
	}

	if err := tr.Run("abc"); err != nil {
		t.Fatalf("expected fallback to recover metadata, got %v", err)
	}
	if !strings.Contains(out.String(), "Spring Sprint") {
		t.Error("fallback metadata not used in report")
	}
}

func TestRun_MetadataUnavailable(t *testing.T) {
	client := testClient()
	client.Info = nil

	ros := &roster.Roster{Entries: []roster.Entry{{Name: "alice", ID: "1"}}}
	tr, _ := newTestTracker(client, ros, &captureRecorder{}, t.TempDir())

	if err := tr.Run("abc"); err == nil {
		t.Fatal("expected fatal error without campaign metadata")
	}
}

func TestRun_NoRosterMatch(t *testing.T) {
	client := testClient()
	ros := &roster.Roster{Entries: []roster.Entry{{Name: "nobody", ID: "1"}}}
	tr, _ := newTestTracker(client, ros, &captureRecorder{}, t.TempDir())

	if err := tr.Run("abc"); err == nil {
		t.Fatal("expected error when no roster user matches")
	}
}

func TestRun_NoPlayers(t *testing.T) {
	client := testClient()
	client.Players = nil

	ros := &roster.Roster{Entries: []roster.Entry{{Name: "alice", ID: "1"}}}
	tr, _ := newTestTracker(client, ros, &captureRecorder{}, t.TempDir())

	if err := tr.Run("abc"); err == nil {
		t.Fatal("expected error when no player data is fetched")
	}
}
