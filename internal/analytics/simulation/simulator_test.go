package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpookyGroup/Spectre-Aegis/internal/odds"
)

func nbaGame(id string) odds.Game {
	return odds.Game{
		ID:       id,
		SportKey: "basketball_nba",
		HomeTeam: "Milwaukee Bucks",
		AwayTeam: "Golden State Warriors",
	}
}

func TestSimulateGameIsDeterministic(t *testing.T) {
	s := NewSimulator(2000, 42)

	first := s.SimulateGame(nbaGame("g1"), 0.6)
	second := s.SimulateGame(nbaGame("g1"), 0.6)

	assert.Equal(t, first, second, "same seed and inputs must reproduce the result")

	other := NewSimulator(2000, 7).SimulateGame(nbaGame("g1"), 0.6)
	assert.NotEqual(t, first.PredictedScores, other.PredictedScores)
}

func TestSimulateGameProbabilitiesAreSane(t *testing.T) {
	s := NewSimulator(5000, 42)

	r := s.SimulateGame(nbaGame("g1"), 0.75)

	assert.Equal(t, 5000, r.NumSimulations)
	assert.Greater(t, r.Probabilities.HomeWin, r.Probabilities.AwayWin,
		"a heavy favorite should win most simulations")
	assert.LessOrEqual(t, r.Probabilities.HomeWin+r.Probabilities.AwayWin, 1.0+1e-9)
	assert.InDelta(t, r.RiskMetrics.UpsetProbability, r.Probabilities.AwayWin, 1e-9)
	assert.GreaterOrEqual(t, r.RiskMetrics.BlowoutProbability, 0.0)
	assert.LessOrEqual(t, r.RiskMetrics.BlowoutProbability, 1.0)
}

func TestSimulateGameScoreModelTracksTheSport(t *testing.T) {
	s := NewSimulator(5000, 42)

	nba := s.SimulateGame(nbaGame("g1"), 0.5)
	assert.InDelta(t, 113.0, nba.PredictedScores.Home.Mean, 2.0)
	assert.InDelta(t, 110.0, nba.PredictedScores.Away.Mean, 2.0)

	nhl := s.SimulateGame(odds.Game{ID: "g2", SportKey: "icehockey_nhl"}, 0.5)
	assert.Less(t, nhl.PredictedScores.Home.Mean, 10.0)
	assert.GreaterOrEqual(t, nhl.PredictedScores.Home.CI95[0], 0.0,
		"scores are floored at zero")

	// Unknown sports fall back to the football model.
	cricket := s.SimulateGame(odds.Game{ID: "g3", SportKey: "cricket"}, 0.5)
	assert.InDelta(t, 25.5, cricket.PredictedScores.Home.Mean, 2.0)
}

func TestSimulateGameScoreStatsOrdering(t *testing.T) {
	s := NewSimulator(5000, 42)

	r := s.SimulateGame(nbaGame("g1"), 0.5)
	home := r.PredictedScores.Home

	assert.Less(t, home.CI95[0], home.Median)
	assert.Greater(t, home.CI95[1], home.Median)
	assert.Greater(t, home.Std, 0.0)
}

func TestSimulateGameHistogramShape(t *testing.T) {
	s := NewSimulator(1000, 42)

	r := s.SimulateGame(nbaGame("g1"), 0.5)

	for _, h := range []Histogram{
		r.ScoreDistribution.HomeScores,
		r.ScoreDistribution.AwayScores,
	} {
		require.Len(t, h.Counts, 30)
		require.Len(t, h.Bins, 31)
		total := 0
		for _, c := range h.Counts {
			total += c
		}
		assert.Equal(t, 1000, total, "every simulation lands in a bin")
		assert.Less(t, h.Bins[0], h.Bins[len(h.Bins)-1])
	}
	assert.Len(t, r.ScoreDistribution.MarginOfVictory.Counts, 40)
}

func TestSimulateGamesUsesPredictionsByID(t *testing.T) {
	s := NewSimulator(3000, 42)
	games := []odds.Game{nbaGame("favored"), nbaGame("unlisted")}

	results := s.SimulateGames(games, map[string]float64{"favored": 0.8})

	require.Len(t, results, 2)
	assert.Equal(t, "favored", results[0].GameID)
	assert.Greater(t, results[0].Probabilities.HomeWin, results[1].Probabilities.HomeWin,
		"the favored game should outscore the coin-flip default")
}

func TestNewSimulatorDefaultsRunCount(t *testing.T) {
	assert.Equal(t, DefaultSimulations, NewSimulator(0, 1).NumSimulations())
	assert.Equal(t, 500, NewSimulator(500, 1).NumSimulations())
}

func TestParlayProbability(t *testing.T) {
	fair := ParlayProbability([]float64{0.5, 0.5})
	assert.InDelta(t, 0.25, fair.WinProbability, 1e-9)
	assert.InDelta(t, 4.0, fair.Odds, 1e-9)
	assert.InDelta(t, 0.0, fair.ExpectedValue, 1e-9)
	assert.Equal(t, 2, fair.NumLegs)
	assert.Equal(t, "negative_ev", fair.Recommendation)

	single := ParlayProbability([]float64{0.9})
	assert.InDelta(t, 0.9, single.WinProbability, 1e-9)
	assert.Equal(t, "negative_ev", single.Recommendation)

	empty := ParlayProbability(nil)
	assert.Equal(t, 0, empty.NumLegs)
	assert.InDelta(t, 1.0, empty.WinProbability, 1e-9)
}
