package odds

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpookyGroup/Spectre-Aegis/internal/cache"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testStore(t *testing.T) cache.Store {
	t.Helper()
	store := cache.NewMemoryStore(time.Minute, 100)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSportsWithoutKeyServesMockData(t *testing.T) {
	client := NewClient("https://api.the-odds-api.com/v4", "", testStore(t), testLogger())

	sports, err := client.Sports(context.Background())
	require.NoError(t, err)
	require.Len(t, sports, 4)
	assert.Equal(t, "americanfootball_nfl", sports[0].Key)
	assert.True(t, sports[0].Active)
}

func TestOddsWithoutKeyServesMockData(t *testing.T) {
	client := NewClient("https://api.the-odds-api.com/v4", "", testStore(t), testLogger())

	games, err := client.Odds(context.Background(), "basketball_nba", Options{})
	require.NoError(t, err)
	require.Len(t, games, 5)

	for _, game := range games {
		assert.Equal(t, "basketball_nba", game.SportKey)
		assert.Equal(t, "NBA", game.SportTitle)
		require.Len(t, game.Bookmakers, 2)
		assert.NotZero(t, game.Bookmakers[0].H2HOdds(game.HomeTeam))
		assert.NotZero(t, game.Bookmakers[1].H2HOdds(game.AwayTeam))
	}
}

func TestOddsFetchesAndCaches(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/sports/icehockey_nhl/odds", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "us", r.URL.Query().Get("regions"))
		assert.Equal(t, "decimal", r.URL.Query().Get("oddsFormat"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"g1","sport_key":"icehockey_nhl","home_team":"Boston Bruins","away_team":"Toronto Maple Leafs","bookmakers":[]}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", testStore(t), testLogger())
	ctx := context.Background()

	games, err := client.Odds(ctx, "icehockey_nhl", Options{})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "g1", games[0].ID)

	again, err := client.Odds(ctx, "icehockey_nhl", Options{})
	require.NoError(t, err)
	assert.Equal(t, games, again)
	assert.Equal(t, int64(1), calls.Load(), "the second lookup must come from cache")
}

func TestOddsSurfacesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-key", testStore(t), testLogger())

	_, err := client.Odds(context.Background(), "basketball_nba", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestUpcomingGamesFiltersByCutoff(t *testing.T) {
	client := NewClient("https://api.the-odds-api.com/v4", "", testStore(t), testLogger())

	// Mock games commence 24h, 36h, 48h, 60h and 72h out.
	games, err := client.UpcomingGames(context.Background(), "baseball_mlb", 50)
	require.NoError(t, err)
	require.Len(t, games, 3)
	for _, game := range games {
		assert.True(t, game.CommenceTime.Before(time.Now().Add(50*time.Hour)))
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	assert.Equal(t, "us", opts.Regions)
	assert.Equal(t, "h2h,spreads,totals", opts.Markets)
	assert.Equal(t, "decimal", opts.OddsFormat)

	custom := Options{Regions: "eu", Markets: "h2h", OddsFormat: "american"}.withDefaults()
	assert.Equal(t, Options{Regions: "eu", Markets: "h2h", OddsFormat: "american"}, custom)
}

func TestH2HOdds(t *testing.T) {
	book := Bookmaker{
		Key: "draftkings",
		Markets: []Market{
			{Key: "spreads", Outcomes: []Outcome{{Name: "Boston Celtics", Price: 1.91}}},
			{Key: MarketH2H, Outcomes: []Outcome{
				{Name: "Boston Celtics", Price: 1.65},
				{Name: "Los Angeles Lakers", Price: 2.30},
			}},
		},
	}

	assert.Equal(t, 1.65, book.H2HOdds("Boston Celtics"))
	assert.Equal(t, 2.30, book.H2HOdds("Los Angeles Lakers"))
	assert.Zero(t, book.H2HOdds("Denver Nuggets"))
}
