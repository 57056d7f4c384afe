// Package prediction produces odds-based game predictions.
package prediction

import (
	"math"
	"time"

	"github.com/SpookyGroup/Spectre-Aegis/internal/analytics/features"
	"github.com/SpookyGroup/Spectre-Aegis/internal/odds"
)

// Interval is a probability confidence interval.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Result is a single-game prediction.
type Result struct {
	Pick               string   `json:"prediction"`
	HomeWinProbability float64  `json:"home_win_probability"`
	AwayWinProbability float64  `json:"away_win_probability"`
	Confidence         float64  `json:"confidence"`
	ConfidenceInterval Interval `json:"confidence_interval"`
	FeaturesUsed       int      `json:"features_used"`
	Note               string   `json:"note,omitempty"`
}

// Predictor derives win probabilities from the market's implied odds with a
// small home-advantage adjustment.
type Predictor struct {
	homeAdvantage float64
}

func NewPredictor() *Predictor {
	return &Predictor{homeAdvantage: 0.05}
}

// Predict estimates the game's outcome from its current odds.
func (p *Predictor) Predict(game odds.Game) Result {
	f := features.Extract(game, time.Now())
	return p.PredictWithFeatures(f)
}

// PredictWithFeatures runs the estimate against a pre-built feature set.
func (p *Predictor) PredictWithFeatures(f features.Set) Result {
	homeProb, ok := f["implied_home_prob"]
	if !ok {
		homeProb = 0.5
	}

	homeProb = math.Min(0.95, homeProb+p.homeAdvantage)
	awayProb := 1.0 - homeProb

	pick := "home"
	if homeProb <= 0.5 {
		pick = "away"
	}

	return Result{
		Pick:               pick,
		HomeWinProbability: homeProb,
		AwayWinProbability: awayProb,
		Confidence:         math.Abs(homeProb-0.5) * 2,
		ConfidenceInterval: Interval{
			Lower: math.Max(0, homeProb-0.1),
			Upper: math.Min(1, homeProb+0.1),
		},
		FeaturesUsed: len(f),
		Note:         "odds-implied estimate",
	}
}
