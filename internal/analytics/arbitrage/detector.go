// Package arbitrage detects two-way arbitrage opportunities across
// bookmakers' head-to-head markets.
package arbitrage

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/SpookyGroup/Spectre-Aegis/internal/analytics/features"
	"github.com/SpookyGroup/Spectre-Aegis/internal/odds"
)

// Opportunity is a detected arbitrage position on one game.
type Opportunity struct {
	GameID       string `json:"game_id"`
	Sport        string `json:"sport"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	CommenceTime string `json:"commence_time"`

	BestHomeOdds      float64 `json:"best_home_odds"`
	BestHomeBookmaker string  `json:"best_home_bookmaker"`
	BestAwayOdds      float64 `json:"best_away_odds"`
	BestAwayBookmaker string  `json:"best_away_bookmaker"`

	// All percentages of bankroll.
	ProfitPercentage float64 `json:"profit_percentage"`
	StakeHome        float64 `json:"stake_home"`
	StakeAway        float64 `json:"stake_away"`
	GuaranteedReturn float64 `json:"guaranteed_return"`

	RiskLevel       string `json:"risk_level"`       // low, medium, high
	TimeSensitivity string `json:"time_sensitivity"` // urgent, moderate, stable

	DetectedAt string `json:"detected_at"`
}

// Stakes is a concrete bet sizing for an opportunity.
type Stakes struct {
	StakeHome        float64 `json:"stake_home"`
	StakeAway        float64 `json:"stake_away"`
	TotalStaked      float64 `json:"total_staked"`
	ExpectedProfit   float64 `json:"expected_profit"`
	ProfitPercentage float64 `json:"profit_percentage"`
	HomeWinsReturn   float64 `json:"home_wins_return"`
	AwayWinsReturn   float64 `json:"away_wins_return"`
}

// Stats summarizes the opportunities a detector has seen.
type Stats struct {
	TotalOpportunities int            `json:"total_opportunities"`
	AvgProfit          float64        `json:"avg_profit"`
	MaxProfit          float64        `json:"max_profit"`
	MinProfit          float64        `json:"min_profit"`
	BySport            map[string]int `json:"by_sport"`
	ByRisk             map[string]int `json:"by_risk"`
}

var knownBookmakers = map[string]bool{
	"DraftKings": true,
	"FanDuel":    true,
	"BetMGM":     true,
	"Caesars":    true,
	"PointsBet":  true,
}

// Detector scans games for guaranteed-profit odds combinations. Profit
// percentages outside [minProfit, maxProfit] are discarded: too small is not
// worth acting on, too large is almost certainly a stale or mistyped line.
type Detector struct {
	minProfit float64
	maxProfit float64

	mu    sync.Mutex
	found []Opportunity

	now func() time.Time
}

// NewDetector creates a detector with profit thresholds as fractions
// (0.01 = 1%).
func NewDetector(minProfit, maxProfit float64) *Detector {
	return &Detector{
		minProfit: minProfit,
		maxProfit: maxProfit,
		now:       time.Now,
	}
}

// ScanGame checks one game. The second return is false when no opportunity
// exists.
func (d *Detector) ScanGame(game odds.Game) (Opportunity, bool) {
	if len(game.Bookmakers) < 2 {
		return Opportunity{}, false
	}

	var bestHome, bestAway float64
	var bestHomeBook, bestAwayBook string
	for _, book := range game.Bookmakers {
		if price := book.H2HOdds(game.HomeTeam); price > bestHome {
			bestHome = price
			bestHomeBook = book.Title
		}
		if price := book.H2HOdds(game.AwayTeam); price > bestAway {
			bestAway = price
			bestAwayBook = book.Title
		}
	}
	if bestHome == 0 || bestAway == 0 {
		return Opportunity{}, false
	}

	homeProb := features.ImpliedProbability(bestHome)
	awayProb := features.ImpliedProbability(bestAway)
	totalProb := homeProb + awayProb

	// Arbitrage exists only when the combined implied probability is
	// below 1.
	if totalProb >= 1.0 {
		return Opportunity{}, false
	}

	profit := 1.0/totalProb - 1.0
	if profit < d.minProfit || profit > d.maxProfit {
		return Opportunity{}, false
	}

	opp := Opportunity{
		GameID:            game.ID,
		Sport:             game.SportTitle,
		HomeTeam:          game.HomeTeam,
		AwayTeam:          game.AwayTeam,
		CommenceTime:      game.CommenceTime.Format(time.RFC3339),
		BestHomeOdds:      bestHome,
		BestHomeBookmaker: bestHomeBook,
		BestAwayOdds:      bestAway,
		BestAwayBookmaker: bestAwayBook,
		ProfitPercentage:  profit * 100,
		StakeHome:         homeProb / totalProb * 100,
		StakeAway:         awayProb / totalProb * 100,
		GuaranteedReturn:  profit * 100,
		RiskLevel:         d.assessRisk(profit, bestHome, bestAway, bestHomeBook, bestAwayBook),
		TimeSensitivity:   d.assessTimeSensitivity(game, profit),
		DetectedAt:        d.now().Format(time.RFC3339),
	}

	d.mu.Lock()
	d.found = append(d.found, opp)
	d.mu.Unlock()

	return opp, true
}

// ScanGames checks many games and returns opportunities sorted by profit,
// highest first.
func (d *Detector) ScanGames(games []odds.Game) []Opportunity {
	opportunities := make([]Opportunity, 0)
	for _, game := range games {
		if opp, ok := d.ScanGame(game); ok {
			opportunities = append(opportunities, opp)
		}
	}

	sort.Slice(opportunities, func(i, j int) bool {
		return opportunities[i].ProfitPercentage > opportunities[j].ProfitPercentage
	})
	return opportunities
}

// OptimalStakes sizes the two bets for a given bankroll so both outcomes pay
// the same.
func (d *Detector) OptimalStakes(opp Opportunity, bankroll float64) Stakes {
	stakeHome := opp.StakeHome / 100 * bankroll
	stakeAway := opp.StakeAway / 100 * bankroll

	homeReturn := stakeHome * opp.BestHomeOdds
	awayReturn := stakeAway * opp.BestAwayOdds
	profit := homeReturn - bankroll

	return Stakes{
		StakeHome:        round2(stakeHome),
		StakeAway:        round2(stakeAway),
		TotalStaked:      round2(stakeHome + stakeAway),
		ExpectedProfit:   round2(profit),
		ProfitPercentage: round2(profit / bankroll * 100),
		HomeWinsReturn:   round2(homeReturn),
		AwayWinsReturn:   round2(awayReturn),
	}
}

// Summary reports aggregate statistics over everything scanned so far.
func (d *Detector) Summary() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	stats := Stats{
		BySport: make(map[string]int),
		ByRisk:  make(map[string]int),
	}
	if len(d.found) == 0 {
		return stats
	}

	stats.TotalOpportunities = len(d.found)
	stats.MinProfit = d.found[0].ProfitPercentage
	for _, opp := range d.found {
		stats.AvgProfit += opp.ProfitPercentage
		stats.MaxProfit = math.Max(stats.MaxProfit, opp.ProfitPercentage)
		stats.MinProfit = math.Min(stats.MinProfit, opp.ProfitPercentage)
		stats.BySport[opp.Sport]++
		stats.ByRisk[opp.RiskLevel]++
	}
	stats.AvgProfit = round2(stats.AvgProfit / float64(len(d.found)))
	stats.MaxProfit = round2(stats.MaxProfit)
	stats.MinProfit = round2(stats.MinProfit)
	return stats
}

func (d *Detector) assessRisk(profit, homeOdds, awayOdds float64, homeBook, awayBook string) string {
	// A wide margin usually means one book has a stale line.
	if profit > 0.05 {
		return "high"
	}
	if homeOdds < 1.1 || awayOdds < 1.1 {
		return "medium"
	}
	if !knownBookmakers[homeBook] || !knownBookmakers[awayBook] {
		return "medium"
	}
	return "low"
}

func (d *Detector) assessTimeSensitivity(game odds.Game, profit float64) string {
	if game.CommenceTime.IsZero() {
		return "moderate"
	}

	hoursUntil := game.CommenceTime.Sub(d.now()).Hours()
	switch {
	case profit > 0.03:
		return "urgent"
	case hoursUntil < 2:
		return "urgent"
	case hoursUntil > 48:
		return "stable"
	default:
		return "moderate"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
