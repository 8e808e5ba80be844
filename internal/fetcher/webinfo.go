package fetcher

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"StepSentinel/internal/model"
)

// nuxtMarker is the assignment the game page uses to embed its state.
const nuxtMarker = "window.__NUXT__="

// nuxtState mirrors the slice of the embedded page state the tracker
// needs. The schema differs from the overview API's.
type nuxtState struct {
	State struct {
		Game struct {
			Game struct {
				ID           string  `json:"id"`
				Name         string  `json:"name"`
				Deposit      float64 `json:"deposit"`
				Token        string  `json:"token"`
				StartDate    string  `json:"startDate"`
				EndDate      string  `json:"endDate"`
				StepTarget   int     `json:"stepTarget"`
				TotalPlayers int     `json:"totalPlayers"`
			} `json:"game"`
		} `json:"game"`
	} `json:"state"`
}

// FetchCampaignInfoFromWeb scrapes campaign metadata from the public game
// page. Brittle fallback for when the overview API is unavailable: it
// depends on the page embedding its state behind the nuxt marker.
func (c *MoonwalkClient) FetchCampaignInfoFromWeb(campaignCode string) (*model.GameInfo, error) {
	endpoint := fmt.Sprintf("%s/game/%s", c.WebBaseURL, campaignCode)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch game page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch game page: status %d", resp.StatusCode)
	}

	raw, err := extractEmbeddedState(resp.Body)
	if err != nil {
		return nil, err
	}

	var state nuxtState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decode embedded state: %w", err)
	}
	game := state.State.Game.Game

	info := &model.GameInfo{
		Code:         game.ID,
		Name:         game.Name,
		Deposit:      game.Deposit,
		TokenSymbol:  game.Token,
		Start:        parseDay(game.StartDate),
		End:          parseDay(game.EndDate),
		StepTarget:   game.StepTarget,
		TotalPlayers: game.TotalPlayers,
		Link:         endpoint,
	}
	if info.StepTarget <= 0 {
		info.StepTarget = 10000
	}
	return info, nil
}

// extractEmbeddedState walks the HTML tree looking for the script tag
// whose text carries the state assignment.
func extractEmbeddedState(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse game page: %w", err)
	}

	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" && n.FirstChild != nil {
			if i := strings.Index(n.FirstChild.Data, nuxtMarker); i >= 0 {
				found = strings.TrimSpace(n.FirstChild.Data[i+len(nuxtMarker):])
				return
			}
		}
		for c := n.FirstChild; c != nil && found == ""; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if found == "" {
		return "", fmt.Errorf("game page: embedded state marker not found")
	}
	return found, nil
}
