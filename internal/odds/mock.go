package odds

import (
	"fmt"
	"strings"
	"time"
)

var mockTeams = map[string][]string{
	"americanfootball_nfl": {
		"Kansas City Chiefs", "Buffalo Bills", "San Francisco 49ers",
		"Dallas Cowboys", "Philadelphia Eagles", "Miami Dolphins",
	},
	"basketball_nba": {
		"Boston Celtics", "Los Angeles Lakers", "Milwaukee Bucks",
		"Denver Nuggets", "Phoenix Suns", "Golden State Warriors",
	},
	"icehockey_nhl": {
		"Colorado Avalanche", "Tampa Bay Lightning", "Boston Bruins",
		"Toronto Maple Leafs", "Edmonton Oilers", "Vegas Golden Knights",
	},
	"baseball_mlb": {
		"Los Angeles Dodgers", "New York Yankees", "Houston Astros",
		"Atlanta Braves", "San Diego Padres", "Philadelphia Phillies",
	},
}

var sportTitles = map[string]string{
	"americanfootball_nfl": "NFL",
	"basketball_nba":       "NBA",
	"icehockey_nhl":        "NHL",
	"baseball_mlb":         "MLB",
}

// MockSports returns the fixture sports listing.
func MockSports() []Sport {
	return []Sport{
		{Key: "americanfootball_nfl", Title: "NFL", Active: true},
		{Key: "basketball_nba", Title: "NBA", Active: true},
		{Key: "icehockey_nhl", Title: "NHL", Active: true},
		{Key: "baseball_mlb", Title: "MLB", Active: true},
	}
}

// MockGames builds five fixture games for a sport with two books pricing each
// game slightly apart. Everything except the commence times is deterministic.
func MockGames(sport string) []Game {
	teams := mockTeams[sport]
	if teams == nil {
		teams = []string{"Team A", "Team B", "Team C", "Team D"}
	}

	games := make([]Game, 0, 5)
	for i := 0; i < 5; i++ {
		home := teams[i*2%len(teams)]
		away := teams[(i*2+1)%len(teams)]
		homeOdds := 1.8 + float64(i)*0.1
		awayOdds := 2.2 - float64(i)*0.1

		games = append(games, Game{
			ID:           fmt.Sprintf("mock_%s_%d", sport, i),
			SportKey:     sport,
			SportTitle:   SportTitle(sport),
			CommenceTime: time.Now().Add(time.Duration(24+i*12) * time.Hour),
			HomeTeam:     home,
			AwayTeam:     away,
			Bookmakers: []Bookmaker{
				{
					Key:   "draftkings",
					Title: "DraftKings",
					Markets: []Market{{
						Key: MarketH2H,
						Outcomes: []Outcome{
							{Name: home, Price: homeOdds},
							{Name: away, Price: awayOdds},
						},
					}},
				},
				{
					Key:   "fanduel",
					Title: "FanDuel",
					Markets: []Market{{
						Key: MarketH2H,
						Outcomes: []Outcome{
							{Name: home, Price: homeOdds + 0.05},
							{Name: away, Price: awayOdds - 0.05},
						},
					}},
				},
			},
		})
	}
	return games
}

// SportTitle maps a sport key to its display title.
func SportTitle(sport string) string {
	if title, ok := sportTitles[sport]; ok {
		return title
	}
	return strings.ToUpper(sport)
}
