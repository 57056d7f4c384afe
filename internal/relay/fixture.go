package relay

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/SpookyGroup/Spectre-Aegis/internal/cache"
	"github.com/SpookyGroup/Spectre-Aegis/internal/odds"
)

// Cache key namespace for mock-mode responses when no upstream is configured.
const mockUpstreamURL = "mock://check-upcoming-games"

const defaultLeague = "americanfootball_nfl"

// mockResponse builds the fixture the relay serves in mock mode: the mock
// game set for the requested league, with no network call.
func (f *Forwarder) mockResponse(body []byte) (*cache.Entry, error) {
	league := defaultLeague
	var req struct {
		League string `json:"league"`
	}
	if len(body) > 0 {
		if err := sonic.Unmarshal(body, &req); err == nil && req.League != "" {
			league = req.League
		}
	}

	payload, err := sonic.Marshal(map[string]interface{}{
		"league": league,
		"source": "mock",
		"games":  odds.MockGames(league),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build mock fixture: %w", err)
	}

	f.logger.WithField("league", league).Debug("serving mock fixture")
	return &cache.Entry{
		StatusCode:  http.StatusOK,
		ContentType: "application/json",
		Body:        payload,
		StoredAt:    time.Now(),
	}, nil
}
