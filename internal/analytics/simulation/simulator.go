// Package simulation runs Monte Carlo score models for game outcomes.
package simulation

import (
	"math"
	"math/rand"
	"sort"

	"github.com/SpookyGroup/Spectre-Aegis/internal/odds"
)

// DefaultSimulations is the number of runs per game unless configured
// otherwise.
const DefaultSimulations = 10000

// scoringParams are per-sport score model parameters.
type scoringParams struct {
	avgScore      float64
	variance      float64
	homeAdvantage float64
}

var sportParams = map[string]scoringParams{
	"americanfootball_nfl": {avgScore: 23.0, variance: 8.0, homeAdvantage: 2.5},
	"basketball_nba":       {avgScore: 110.0, variance: 12.0, homeAdvantage: 3.0},
	"icehockey_nhl":        {avgScore: 3.0, variance: 1.5, homeAdvantage: 0.3},
	"baseball_mlb":         {avgScore: 4.5, variance: 2.0, homeAdvantage: 0.5},
	"soccer":               {avgScore: 1.5, variance: 1.2, homeAdvantage: 0.3},
}

// ScoreStats summarizes one team's simulated scores.
type ScoreStats struct {
	Mean   float64    `json:"mean"`
	Median float64    `json:"median"`
	Std    float64    `json:"std"`
	CI95   [2]float64 `json:"ci_95"`
}

// Histogram is binned count data in the numpy histogram shape: len(Bins) is
// len(Counts)+1.
type Histogram struct {
	Counts []int     `json:"counts"`
	Bins   []float64 `json:"bins"`
}

// Result carries the full output of one game simulation.
type Result struct {
	GameID         string `json:"game_id"`
	HomeTeam       string `json:"home_team"`
	AwayTeam       string `json:"away_team"`
	NumSimulations int    `json:"num_simulations"`

	Probabilities struct {
		HomeWin float64 `json:"home_win"`
		AwayWin float64 `json:"away_win"`
	} `json:"probabilities"`

	PredictedScores struct {
		Home ScoreStats `json:"home"`
		Away ScoreStats `json:"away"`
	} `json:"predicted_scores"`

	MarginOfVictory struct {
		Mean float64 `json:"mean"`
		Std  float64 `json:"std"`
	} `json:"margin_of_victory"`

	RiskMetrics struct {
		UpsetProbability   float64 `json:"upset_probability"`
		BlowoutProbability float64 `json:"blowout_probability"`
	} `json:"risk_metrics"`

	ScoreDistribution struct {
		HomeScores      Histogram `json:"home_scores"`
		AwayScores      Histogram `json:"away_scores"`
		MarginOfVictory Histogram `json:"margin_of_victory"`
	} `json:"score_distribution"`
}

// Parlay is the evaluation of a multi-leg bet.
type Parlay struct {
	WinProbability float64 `json:"parlay_win_probability"`
	Odds           float64 `json:"parlay_odds"`
	ExpectedValue  float64 `json:"expected_value"`
	NumLegs        int     `json:"num_legs"`
	Recommendation string  `json:"recommendation"`
}

// Simulator draws game scores from a normal model whose means are shifted by
// the predicted win probability. Each call reseeds from the configured seed,
// so identical inputs always produce identical output.
type Simulator struct {
	numSimulations int
	seed           int64
}

func NewSimulator(numSimulations int, seed int64) *Simulator {
	if numSimulations <= 0 {
		numSimulations = DefaultSimulations
	}
	return &Simulator{numSimulations: numSimulations, seed: seed}
}

// NumSimulations reports the configured run count.
func (s *Simulator) NumSimulations() int {
	return s.numSimulations
}

// SimulateGame runs the score model for one game given the home team's
// predicted win probability.
func (s *Simulator) SimulateGame(game odds.Game, homeWinProb float64) Result {
	params, ok := sportParams[game.SportKey]
	if !ok {
		params = sportParams["americanfootball_nfl"]
	}

	// Shift the score means toward the favored side.
	probFactor := (homeWinProb - 0.5) * 2
	homeAvg := params.avgScore + params.homeAdvantage + probFactor*params.variance*0.3
	awayAvg := params.avgScore - probFactor*params.variance*0.3

	rng := rand.New(rand.NewSource(s.seed))
	homeScores := make([]float64, s.numSimulations)
	awayScores := make([]float64, s.numSimulations)
	for i := 0; i < s.numSimulations; i++ {
		homeScores[i] = math.Round(math.Max(0, homeAvg+rng.NormFloat64()*params.variance))
		awayScores[i] = math.Round(math.Max(0, awayAvg+rng.NormFloat64()*params.variance))
	}

	var homeWins, awayWins, blowouts int
	mov := make([]float64, s.numSimulations)
	for i := range homeScores {
		mov[i] = homeScores[i] - awayScores[i]
		switch {
		case homeScores[i] > awayScores[i]:
			homeWins++
		case awayScores[i] > homeScores[i]:
			awayWins++
		}
		if math.Abs(mov[i]) > 20 {
			blowouts++
		}
	}

	n := float64(s.numSimulations)
	result := Result{
		GameID:         game.ID,
		HomeTeam:       game.HomeTeam,
		AwayTeam:       game.AwayTeam,
		NumSimulations: s.numSimulations,
	}
	result.Probabilities.HomeWin = round4(float64(homeWins) / n)
	result.Probabilities.AwayWin = round4(float64(awayWins) / n)
	result.PredictedScores.Home = scoreStats(homeScores)
	result.PredictedScores.Away = scoreStats(awayScores)
	result.MarginOfVictory.Mean = round1(mean(mov))
	result.MarginOfVictory.Std = round1(std(mov))
	result.RiskMetrics.UpsetProbability = round4(math.Min(
		result.Probabilities.HomeWin, result.Probabilities.AwayWin))
	result.RiskMetrics.BlowoutProbability = round4(float64(blowouts) / n)
	result.ScoreDistribution.HomeScores = histogram(homeScores, 30)
	result.ScoreDistribution.AwayScores = histogram(awayScores, 30)
	result.ScoreDistribution.MarginOfVictory = histogram(mov, 40)
	return result
}

// SimulateGames runs every game, looking up its win probability in
// predictions by game ID and defaulting to a coin flip.
func (s *Simulator) SimulateGames(games []odds.Game, predictions map[string]float64) []Result {
	results := make([]Result, 0, len(games))
	for _, game := range games {
		prob, ok := predictions[game.ID]
		if !ok {
			prob = 0.5
		}
		results = append(results, s.SimulateGame(game, prob))
	}
	return results
}

// ParlayProbability evaluates a parlay from its legs' win probabilities.
func ParlayProbability(probabilities []float64) Parlay {
	winProb := 1.0
	parlayOdds := 1.0
	for _, p := range probabilities {
		winProb *= p
		if p > 0 {
			parlayOdds *= 1.0 / p
		}
	}

	ev := winProb*parlayOdds - 1.0
	recommendation := "negative_ev"
	if ev > 0 {
		recommendation = "positive_ev"
	}

	return Parlay{
		WinProbability: winProb,
		Odds:           parlayOdds,
		ExpectedValue:  ev,
		NumLegs:        len(probabilities),
		Recommendation: recommendation,
	}
}

func scoreStats(scores []float64) ScoreStats {
	return ScoreStats{
		Mean:   round1(mean(scores)),
		Median: round1(percentile(scores, 50)),
		Std:    round1(std(scores)),
		CI95: [2]float64{
			round1(percentile(scores, 2.5)),
			round1(percentile(scores, 97.5)),
		},
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func std(values []float64) float64 {
	m := mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)))
}

// percentile uses linear interpolation between closest ranks, matching
// numpy's default.
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// histogram bins values into equal-width buckets between min and max.
func histogram(values []float64, bins int) Histogram {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	width := (hi - lo) / float64(bins)
	counts := make([]int, bins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	return Histogram{Counts: counts, Bins: edges}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
