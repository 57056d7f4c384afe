package prediction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SpookyGroup/Spectre-Aegis/internal/analytics/features"
	"github.com/SpookyGroup/Spectre-Aegis/internal/odds"
)

func TestPredictWithFeaturesFavorite(t *testing.T) {
	p := NewPredictor()

	r := p.PredictWithFeatures(features.Set{"implied_home_prob": 0.65})

	assert.Equal(t, "home", r.Pick)
	assert.InDelta(t, 0.70, r.HomeWinProbability, 1e-9)
	assert.InDelta(t, 0.30, r.AwayWinProbability, 1e-9)
	assert.InDelta(t, 0.40, r.Confidence, 1e-9)
	assert.InDelta(t, 0.60, r.ConfidenceInterval.Lower, 1e-9)
	assert.InDelta(t, 0.80, r.ConfidenceInterval.Upper, 1e-9)
	assert.Equal(t, 1, r.FeaturesUsed)
}

func TestPredictWithFeaturesUnderdogHome(t *testing.T) {
	p := NewPredictor()

	r := p.PredictWithFeatures(features.Set{"implied_home_prob": 0.30})

	assert.Equal(t, "away", r.Pick)
	assert.InDelta(t, 0.35, r.HomeWinProbability, 1e-9)
	assert.InDelta(t, 0.65, r.AwayWinProbability, 1e-9)
}

func TestPredictWithFeaturesCapsAtNinetyFive(t *testing.T) {
	p := NewPredictor()

	r := p.PredictWithFeatures(features.Set{"implied_home_prob": 0.93})

	assert.InDelta(t, 0.95, r.HomeWinProbability, 1e-9)
	assert.InDelta(t, 1.0, r.ConfidenceInterval.Upper, 1e-9)
}

func TestPredictWithFeaturesMissingProbability(t *testing.T) {
	p := NewPredictor()

	r := p.PredictWithFeatures(features.Set{})

	// Home advantage alone tips a coin flip to home.
	assert.Equal(t, "home", r.Pick)
	assert.InDelta(t, 0.55, r.HomeWinProbability, 1e-9)
}

func TestPredictExtractsFromGame(t *testing.T) {
	p := NewPredictor()
	game := odds.Game{
		ID:           "g1",
		SportKey:     "basketball_nba",
		HomeTeam:     "Denver Nuggets",
		AwayTeam:     "Phoenix Suns",
		CommenceTime: time.Now().Add(24 * time.Hour),
		Bookmakers: []odds.Bookmaker{{
			Key: "draftkings",
			Markets: []odds.Market{{
				Key: odds.MarketH2H,
				Outcomes: []odds.Outcome{
					{Name: "Denver Nuggets", Price: 1.5},
					{Name: "Phoenix Suns", Price: 2.6},
				},
			}},
		}},
	}

	r := p.Predict(game)

	assert.Equal(t, "home", r.Pick)
	assert.Greater(t, r.HomeWinProbability, 0.6)
	assert.Greater(t, r.FeaturesUsed, 5)
	assert.NotEmpty(t, r.Note)
}
