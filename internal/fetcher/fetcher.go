package fetcher

import "StepSentinel/internal/model"

// PageSize is the fixed batch size of the player endpoint, matching the
// web app's own fetch logic.
const PageSize = 20

// Client defines the remote API surface the tracker needs.
type Client interface {
	FetchPlayersPage(campaignCode string, skip, take int) ([]model.RawPlayerRecord, error)
	FetchCampaignOverview(campaignCode string) (*model.GameInfo, error)
	Name() string
}
