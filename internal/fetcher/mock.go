package fetcher

import (
	"fmt"

	"StepSentinel/internal/model"
)

// MockClient serves controllable canned data for development and testing.
type MockClient struct {
	Players    []model.RawPlayerRecord
	Info       *model.GameInfo
	FailuresAt map[int]int // skip offset -> failures to serve before succeeding
	Calls      []int       // skip offsets in request order
}

func (m *MockClient) Name() string { return "mock" }

func (m *MockClient) FetchPlayersPage(_ string, skip, take int) ([]model.RawPlayerRecord, error) {
	m.Calls = append(m.Calls, skip)
	if m.FailuresAt[skip] > 0 {
		m.FailuresAt[skip]--
		return nil, fmt.Errorf("mock: transient failure at skip=%d", skip)
	}
	if skip >= len(m.Players) {
		return nil, nil
	}
	end := skip + take
	if end > len(m.Players) {
		end = len(m.Players)
	}
	return m.Players[skip:end], nil
}

func (m *MockClient) FetchCampaignOverview(_ string) (*model.GameInfo, error) {
	if m.Info == nil {
		return nil, fmt.Errorf("mock: no campaign info configured")
	}
	return m.Info, nil
}
