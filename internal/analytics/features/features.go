// Package features extracts model inputs from raw game data.
package features

import (
	"strings"
	"time"

	"github.com/SpookyGroup/Spectre-Aegis/internal/odds"
)

// Set is a named feature vector.
type Set map[string]float64

// Extract builds the feature set for a game at the given instant. Prices are
// expected in decimal format, the default for The Odds API.
func Extract(game odds.Game, now time.Time) Set {
	f := Set{}
	basicFeatures(f, game)
	temporalFeatures(f, game, now)
	oddsFeatures(f, game)
	return f
}

func basicFeatures(f Set, game odds.Game) {
	f["is_home"] = 1.0

	sport := strings.ToLower(game.SportKey)
	f["is_nfl"] = boolFeature(strings.Contains(sport, "football"))
	f["is_nba"] = boolFeature(strings.Contains(sport, "basketball"))
	f["is_nhl"] = boolFeature(strings.Contains(sport, "hockey"))
	f["is_mlb"] = boolFeature(strings.Contains(sport, "baseball"))
}

func temporalFeatures(f Set, game odds.Game, now time.Time) {
	if game.CommenceTime.IsZero() {
		f["hours_until_game"] = 24.0
		f["day_of_week"] = 3
		f["is_weekend"] = 0.0
		f["hour_of_day"] = 19
		f["is_primetime"] = 1.0
		return
	}

	start := game.CommenceTime
	f["hours_until_game"] = start.Sub(now).Hours()
	f["day_of_week"] = float64(start.Weekday())
	f["is_weekend"] = boolFeature(start.Weekday() == time.Saturday || start.Weekday() == time.Sunday)
	f["hour_of_day"] = float64(start.Hour())
	f["is_primetime"] = boolFeature(start.Hour() >= 18 && start.Hour() <= 22)
}

func oddsFeatures(f Set, game odds.Game) {
	var homeOdds, awayOdds []float64
	for _, book := range game.Bookmakers {
		if price := book.H2HOdds(game.HomeTeam); price > 0 {
			homeOdds = append(homeOdds, price)
		}
		if price := book.H2HOdds(game.AwayTeam); price > 0 {
			awayOdds = append(awayOdds, price)
		}
	}

	f["num_bookmakers"] = float64(len(game.Bookmakers))
	if len(homeOdds) == 0 || len(awayOdds) == 0 {
		f["implied_home_prob"] = 0.5
		f["implied_away_prob"] = 0.5
		return
	}

	bestHome := maxOf(homeOdds)
	bestAway := maxOf(awayOdds)
	avgHome := mean(homeOdds)
	avgAway := mean(awayOdds)

	homeProb := ImpliedProbability(avgHome)
	awayProb := ImpliedProbability(avgAway)

	// Normalize out the bookmaker margin.
	total := homeProb + awayProb
	if total > 0 {
		f["implied_home_prob"] = homeProb / total
		f["implied_away_prob"] = awayProb / total
	} else {
		f["implied_home_prob"] = 0.5
		f["implied_away_prob"] = 0.5
	}

	f["best_home_odds"] = bestHome
	f["best_away_odds"] = bestAway
	f["avg_home_odds"] = avgHome
	f["avg_away_odds"] = avgAway
	f["home_odds_spread"] = bestHome - minOf(homeOdds)
	f["away_odds_spread"] = bestAway - minOf(awayOdds)
	f["overround"] = total - 1.0
}

// ImpliedProbability converts a decimal price to its implied probability.
// A price at or below 1.0 pays nothing and carries no information.
func ImpliedProbability(price float64) float64 {
	if price <= 1.0 {
		return 0
	}
	return 1.0 / price
}

// AmericanToDecimal converts American odds to decimal format.
func AmericanToDecimal(american float64) float64 {
	if american > 0 {
		return 1.0 + american/100.0
	}
	if american < 0 {
		return 1.0 + 100.0/-american
	}
	return 0
}

func boolFeature(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
