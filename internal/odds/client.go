package odds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"

	"github.com/SpookyGroup/Spectre-Aegis/internal/cache"
)

// ResponseTTL is how long an odds snapshot stays fresh.
const ResponseTTL = 5 * time.Minute

// Options narrows an odds query.
type Options struct {
	Regions    string
	Markets    string
	OddsFormat string
}

func (o Options) withDefaults() Options {
	if o.Regions == "" {
		o.Regions = "us"
	}
	if o.Markets == "" {
		o.Markets = MarketH2H + ",spreads,totals"
	}
	if o.OddsFormat == "" {
		o.OddsFormat = "decimal"
	}
	return o
}

// Client fetches odds from The Odds API. Responses are cached through the
// injected store; with no API key configured the client serves mock data.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	store      cache.Store
	logger     *logrus.Logger
}

func NewClient(baseURL, apiKey string, store cache.Store, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		store:      store,
		logger:     logger,
	}
}

// Sports lists the available sports.
func (c *Client) Sports(ctx context.Context) ([]Sport, error) {
	if c.apiKey == "" {
		return MockSports(), nil
	}

	endpoint := fmt.Sprintf("%s/sports?apiKey=%s", c.baseURL, url.QueryEscape(c.apiKey))
	var sports []Sport
	if err := c.getJSON(ctx, endpoint, &sports); err != nil {
		return nil, err
	}
	return sports, nil
}

// Odds returns the games with current odds for one sport.
func (c *Client) Odds(ctx context.Context, sport string, opts Options) ([]Game, error) {
	if c.apiKey == "" {
		c.logger.WithField("sport", sport).Debug("no odds api key configured, serving mock data")
		return MockGames(sport), nil
	}

	opts = opts.withDefaults()
	cacheKey := fmt.Sprintf("odds:%s:%s:%s", sport, opts.Regions, opts.Markets)

	if entry, ok, err := c.store.Get(ctx, cacheKey); err == nil && ok {
		var games []Game
		if err := sonic.Unmarshal(entry.Body, &games); err == nil {
			c.logger.WithField("sport", sport).Debug("serving cached odds")
			return games, nil
		}
	}

	endpoint := fmt.Sprintf(
		"%s/sports/%s/odds?apiKey=%s&regions=%s&markets=%s&oddsFormat=%s",
		c.baseURL,
		url.PathEscape(sport),
		url.QueryEscape(c.apiKey),
		url.QueryEscape(opts.Regions),
		url.QueryEscape(opts.Markets),
		url.QueryEscape(opts.OddsFormat),
	)

	var games []Game
	if err := c.getJSON(ctx, endpoint, &games); err != nil {
		return nil, err
	}

	if raw, err := sonic.Marshal(games); err == nil {
		if err := c.store.Set(ctx, cacheKey, &cache.Entry{
			StatusCode:  http.StatusOK,
			ContentType: "application/json",
			Body:        raw,
			StoredAt:    time.Now(),
		}); err != nil {
			c.logger.WithError(err).Warn("failed to cache odds response")
		}
	}

	c.logger.WithFields(logrus.Fields{
		"sport": sport,
		"games": len(games),
	}).Info("fetched odds")
	return games, nil
}

// UpcomingGames filters a sport's games to those starting within hoursAhead.
func (c *Client) UpcomingGames(ctx context.Context, sport string, hoursAhead int) ([]Game, error) {
	games, err := c.Odds(ctx, sport, Options{})
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(time.Duration(hoursAhead) * time.Hour)
	upcoming := make([]Game, 0, len(games))
	for _, game := range games {
		if !game.CommenceTime.After(cutoff) {
			upcoming = append(upcoming, game)
		}
	}
	return upcoming, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("odds api request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read odds api response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("odds api returned status %d: %s", resp.StatusCode, body)
	}

	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode odds api response: %w", err)
	}
	return nil
}
