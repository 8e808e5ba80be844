package fetcher

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"StepSentinel/internal/model"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// MoonwalkClient implements Client against the moonwalk.fit REST API.
type MoonwalkClient struct {
	BaseURL    string
	WebBaseURL string
	Client     *http.Client
}

// NewMoonwalkClient creates a client with optional proxy support.
func NewMoonwalkClient(baseURL, webBaseURL, proxyURL string) *MoonwalkClient {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &MoonwalkClient{
		BaseURL:    baseURL,
		WebBaseURL: webBaseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (c *MoonwalkClient) Name() string { return "moonwalk" }

func (c *MoonwalkClient) setAPIHeaders(req *http.Request, campaignCode string) {
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Origin", c.WebBaseURL)
	req.Header.Set("Referer", fmt.Sprintf("%s/game/%s", c.WebBaseURL, campaignCode))
}

// playersEnvelope is the paginated player endpoint response.
type playersEnvelope struct {
	Val []playerRecord `json:"val"`
}

type playerRecord struct {
	User struct {
		Name string `json:"name"`
	} `json:"user"`
	Steps []stepEntry `json:"steps"`
}

// stepEntry keeps the steps field loosely typed: the API mixes numbers,
// an overflow marker string, and null in the same slot.
type stepEntry struct {
	Day   string      `json:"day"`
	Steps interface{} `json:"steps"`
}

// FetchPlayersPage retrieves one offset/limit batch of player records.
func (c *MoonwalkClient) FetchPlayersPage(campaignCode string, skip, take int) ([]model.RawPlayerRecord, error) {
	endpoint := fmt.Sprintf("%s/api/user-games/web/%s?skip=%d&take=%d",
		c.BaseURL, url.PathEscape(campaignCode), skip, take)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setAPIHeaders(req, campaignCode)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch players page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read players page: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("players page: status %d, body: %s", resp.StatusCode, string(body))
	}

	var env playersEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode players page: %w", err)
	}

	records := make([]model.RawPlayerRecord, 0, len(env.Val))
	for _, p := range env.Val {
		rec := model.RawPlayerRecord{Username: p.User.Name}
		for _, s := range p.Steps {
			rec.Entries = append(rec.Entries, model.RawStepEntry{
				Day:   parseDay(s.Day),
				Steps: s.Steps,
			})
		}
		records = append(records, rec)
	}
	return records, nil
}

// overviewEnvelope is the campaign overview endpoint response.
type overviewEnvelope struct {
	Sts   int  `json:"sts"`
	IsVld bool `json:"isVld"`
	Val   struct {
		Code     string  `json:"code"`
		Name     string  `json:"name"`
		Deposit  float64 `json:"deposit"`
		Currency string  `json:"currency"`
		Start    int64   `json:"start"`
		End      int64   `json:"end"`
		Steps    int     `json:"steps"`
		Size     int     `json:"size"`
	} `json:"val"`
}

// FetchCampaignOverview retrieves campaign metadata in a single call.
// There is no partial mode here: without a target and date range there is
// nothing to evaluate against.
func (c *MoonwalkClient) FetchCampaignOverview(campaignCode string) (*model.GameInfo, error) {
	endpoint := fmt.Sprintf("%s/api/games/overview/%s", c.BaseURL, url.PathEscape(campaignCode))

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setAPIHeaders(req, campaignCode)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch campaign overview: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read campaign overview: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("campaign overview: status %d, body: %s", resp.StatusCode, string(body))
	}

	var env overviewEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode campaign overview: %w", err)
	}
	if env.Sts != http.StatusOK || !env.IsVld {
		return nil, fmt.Errorf("campaign overview: invalid response (sts=%d, isVld=%v)", env.Sts, env.IsVld)
	}

	info := &model.GameInfo{
		Code:         env.Val.Code,
		Name:         env.Val.Name,
		Deposit:      env.Val.Deposit,
		TokenSymbol:  strings.ToUpper(env.Val.Currency),
		Start:        time.Unix(env.Val.Start, 0),
		End:          time.Unix(env.Val.End, 0),
		StepTarget:   env.Val.Steps,
		TotalPlayers: env.Val.Size,
		Link:         fmt.Sprintf("%s/game/%s", c.WebBaseURL, campaignCode),
	}
	if info.StepTarget <= 0 {
		info.StepTarget = 10000
	}
	return info, nil
}

// parseDay handles both plain dates and ISO timestamps; only the date
// part matters for campaign-day alignment.
func parseDay(s string) time.Time {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
