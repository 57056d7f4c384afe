package arbitrage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpookyGroup/Spectre-Aegis/internal/odds"
)

func twoBookGame(id string, dkHome, dkAway, fdHome, fdAway float64) odds.Game {
	home, away := "Kansas City Chiefs", "Buffalo Bills"
	book := func(key, title string, h, a float64) odds.Bookmaker {
		return odds.Bookmaker{
			Key:   key,
			Title: title,
			Markets: []odds.Market{{
				Key: odds.MarketH2H,
				Outcomes: []odds.Outcome{
					{Name: home, Price: h},
					{Name: away, Price: a},
				},
			}},
		}
	}
	return odds.Game{
		ID:           id,
		SportKey:     "americanfootball_nfl",
		SportTitle:   "NFL",
		HomeTeam:     home,
		AwayTeam:     away,
		CommenceTime: time.Now().Add(24 * time.Hour),
		Bookmakers: []odds.Bookmaker{
			book("draftkings", "DraftKings", dkHome, dkAway),
			book("fanduel", "FanDuel", fdHome, fdAway),
		},
	}
}

func TestScanGameFindsTwoWayArbitrage(t *testing.T) {
	d := NewDetector(0.01, 0.15)

	// Best home 2.05 at FanDuel, best away 2.15 at DraftKings:
	// 1/2.05 + 1/2.15 ≈ 0.953, about 4.9% guaranteed profit.
	opp, ok := d.ScanGame(twoBookGame("g1", 1.95, 2.15, 2.05, 1.90))
	require.True(t, ok)

	assert.Equal(t, "g1", opp.GameID)
	assert.Equal(t, 2.05, opp.BestHomeOdds)
	assert.Equal(t, "FanDuel", opp.BestHomeBookmaker)
	assert.Equal(t, 2.15, opp.BestAwayOdds)
	assert.Equal(t, "DraftKings", opp.BestAwayBookmaker)
	assert.InDelta(t, 4.94, opp.ProfitPercentage, 0.01)
	assert.InDelta(t, 100.0, opp.StakeHome+opp.StakeAway, 1e-9)
	assert.Equal(t, "low", opp.RiskLevel)
	assert.Equal(t, "urgent", opp.TimeSensitivity, "profit above 3% should be flagged urgent")
	assert.NotEmpty(t, opp.DetectedAt)
}

func TestScanGameNoArbitrageAcrossBooks(t *testing.T) {
	d := NewDetector(0.01, 0.15)

	// 1/1.95 + 1/2.00 > 1: the margin survives line shopping.
	_, ok := d.ScanGame(twoBookGame("g1", 1.90, 1.95, 1.95, 2.00))
	assert.False(t, ok)
}

func TestScanGameProfitThresholds(t *testing.T) {
	// ~0.5% profit falls below a 1% floor.
	d := NewDetector(0.01, 0.15)
	_, ok := d.ScanGame(twoBookGame("g1", 2.00, 2.02, 2.00, 2.02))
	assert.False(t, ok, "profit below the floor must be discarded")

	// ~50% profit reads as a stale line, not free money.
	_, ok = d.ScanGame(twoBookGame("g2", 3.0, 3.0, 3.0, 3.0))
	assert.False(t, ok, "profit above the ceiling must be discarded")
}

func TestScanGameRequiresTwoBookmakers(t *testing.T) {
	d := NewDetector(0.001, 0.5)
	game := twoBookGame("g1", 2.05, 2.15, 2.05, 2.15)
	game.Bookmakers = game.Bookmakers[:1]

	_, ok := d.ScanGame(game)
	assert.False(t, ok)
}

func TestScanGameRiskAssessment(t *testing.T) {
	d := NewDetector(0.001, 0.5)

	// Wide margin: 1/2.3 + 1/2.3 ≈ 0.87, ~15% profit.
	opp, ok := d.ScanGame(twoBookGame("g1", 2.3, 2.3, 2.3, 2.3))
	require.True(t, ok)
	assert.Equal(t, "high", opp.RiskLevel)

	// Unknown bookmaker titles downgrade to medium.
	game := twoBookGame("g2", 1.95, 2.15, 2.05, 1.90)
	game.Bookmakers[0].Title = "ShadyBook"
	opp, ok = d.ScanGame(game)
	require.True(t, ok)
	assert.Equal(t, "medium", opp.RiskLevel)
}

func TestScanGamesSortsByProfit(t *testing.T) {
	d := NewDetector(0.01, 0.15)
	games := []odds.Game{
		twoBookGame("small", 2.02, 2.06, 2.02, 2.06), // ~2% profit
		twoBookGame("big", 2.05, 2.15, 2.05, 2.15),   // ~4.9% profit
		twoBookGame("none", 1.90, 1.95, 1.92, 1.93),
	}

	found := d.ScanGames(games)

	require.Len(t, found, 2)
	assert.Equal(t, "big", found[0].GameID)
	assert.Equal(t, "small", found[1].GameID)
	assert.Greater(t, found[0].ProfitPercentage, found[1].ProfitPercentage)
}

func TestOptimalStakesEqualizeReturns(t *testing.T) {
	d := NewDetector(0.01, 0.15)
	opp, ok := d.ScanGame(twoBookGame("g1", 1.95, 2.15, 2.05, 1.90))
	require.True(t, ok)

	stakes := d.OptimalStakes(opp, 1000)

	assert.InDelta(t, 1000, stakes.TotalStaked, 0.01)
	assert.InDelta(t, stakes.HomeWinsReturn, stakes.AwayWinsReturn, 0.05,
		"both outcomes must pay the same")
	assert.InDelta(t, 49.4, stakes.ExpectedProfit, 0.5)
	assert.Greater(t, stakes.StakeHome, stakes.StakeAway,
		"the shorter price takes the larger stake")
}

func TestSummaryAggregates(t *testing.T) {
	d := NewDetector(0.01, 0.15)

	empty := d.Summary()
	assert.Zero(t, empty.TotalOpportunities)

	d.ScanGames([]odds.Game{
		twoBookGame("small", 2.02, 2.06, 2.02, 2.06),
		twoBookGame("big", 2.05, 2.15, 2.05, 2.15),
	})

	stats := d.Summary()
	assert.Equal(t, 2, stats.TotalOpportunities)
	assert.Equal(t, 2, stats.BySport["NFL"])
	assert.Greater(t, stats.MaxProfit, stats.MinProfit)
	assert.GreaterOrEqual(t, stats.AvgProfit, stats.MinProfit)
	assert.LessOrEqual(t, stats.AvgProfit, stats.MaxProfit)
}
