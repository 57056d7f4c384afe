// Package odds provides a typed client for The Odds API plus deterministic
// mock data for offline use.
package odds

import "time"

// Sport is one entry from the /sports listing.
type Sport struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// Game is a single event with the odds offered by each bookmaker.
type Game struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker carries one book's markets for a game.
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// Market is a single betting market, e.g. "h2h" (moneyline).
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is one priced side of a market.
type Outcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// MarketH2H is the head-to-head (moneyline) market key.
const MarketH2H = "h2h"

// H2HOdds returns a bookmaker's h2h price for the named team, or 0 when the
// book does not price it.
func (b Bookmaker) H2HOdds(team string) float64 {
	for _, market := range b.Markets {
		if market.Key != MarketH2H {
			continue
		}
		for _, outcome := range market.Outcomes {
			if outcome.Name == team {
				return outcome.Price
			}
		}
	}
	return 0
}
