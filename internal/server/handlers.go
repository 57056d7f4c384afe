package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SpookyGroup/Spectre-Aegis/internal/analytics/arbitrage"
	"github.com/SpookyGroup/Spectre-Aegis/internal/analytics/features"
	"github.com/SpookyGroup/Spectre-Aegis/internal/analytics/prediction"
	"github.com/SpookyGroup/Spectre-Aegis/internal/analytics/simulation"
	"github.com/SpookyGroup/Spectre-Aegis/internal/odds"
	"github.com/SpookyGroup/Spectre-Aegis/internal/relay"
)

func (s *Server) handleHealth(c *gin.Context) {
	allowed := s.cfg.AllowedBackends
	if allowed == nil {
		allowed = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"env": gin.H{
			"cache_ttl":         int(s.cfg.CacheTTL.Seconds()),
			"rate_limit_window": int(s.cfg.RateLimitWindow.Seconds()),
			"rate_limit_max":    s.cfg.RateLimitMax,
			"allowed_backends":  allowed,
		},
	})
}

// handleCheckUpcomingGames relays the request body verbatim: the gateway does
// not parse or validate the JSON it forwards.
func (s *Server) handleCheckUpcomingGames(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read request body"})
		return
	}

	resp, err := s.forwarder.Forward(c.Request.Context(), body)
	if err != nil {
		var relayErr *relay.Error
		if errors.As(err, &relayErr) {
			c.JSON(relayErr.Status, gin.H{"error": relayErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, resp.Body)
}

// gameInput is the wire shape of a game in analytics requests.
type gameInput struct {
	ID           string           `json:"id" binding:"required"`
	SportKey     string           `json:"sport_key" binding:"required"`
	SportTitle   string           `json:"sport_title"`
	CommenceTime time.Time        `json:"commence_time"`
	HomeTeam     string           `json:"home_team" binding:"required"`
	AwayTeam     string           `json:"away_team" binding:"required"`
	Bookmakers   []odds.Bookmaker `json:"bookmakers"`
}

func (g gameInput) toGame() odds.Game {
	return odds.Game{
		ID:           g.ID,
		SportKey:     g.SportKey,
		SportTitle:   g.SportTitle,
		CommenceTime: g.CommenceTime,
		HomeTeam:     g.HomeTeam,
		AwayTeam:     g.AwayTeam,
		Bookmakers:   g.Bookmakers,
	}
}

type predictRequest struct {
	Game              gameInput `json:"game" binding:"required"`
	IncludeSimulation *bool     `json:"include_simulation"`
	IncludeArbitrage  *bool     `json:"include_arbitrage"`
}

type arbitrageSection struct {
	OpportunityFound bool                   `json:"opportunity_found"`
	Opportunity      *arbitrage.Opportunity `json:"opportunity,omitempty"`
}

type predictionResponse struct {
	GameID   string `json:"game_id"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	prediction.Result
	Simulation *simulation.Result `json:"simulation,omitempty"`
	Arbitrage  *arbitrageSection  `json:"arbitrage,omitempty"`
	Timestamp  string             `json:"timestamp"`
}

func (s *Server) predictGame(game odds.Game, includeSimulation, includeArbitrage bool) predictionResponse {
	f := features.Extract(game, time.Now())
	pred := s.predictor.PredictWithFeatures(f)

	resp := predictionResponse{
		GameID:    game.ID,
		HomeTeam:  game.HomeTeam,
		AwayTeam:  game.AwayTeam,
		Result:    pred,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if includeSimulation {
		sim := s.simulator.SimulateGame(game, pred.HomeWinProbability)
		resp.Simulation = &sim
	}

	if includeArbitrage {
		section := &arbitrageSection{}
		if opp, ok := s.detector.ScanGame(game); ok {
			section.OpportunityFound = true
			section.Opportunity = &opp
		}
		resp.Arbitrage = section
	}
	return resp
}

func (s *Server) handlePredict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := s.predictGame(req.Game.toGame(),
		boolOrDefault(req.IncludeSimulation, true),
		boolOrDefault(req.IncludeArbitrage, true))
	c.JSON(http.StatusOK, resp)
}

type predictBatchRequest struct {
	Games             []gameInput `json:"games" binding:"required,min=1,dive"`
	IncludeSimulation *bool       `json:"include_simulation"`
	IncludeArbitrage  *bool       `json:"include_arbitrage"`
}

func (s *Server) handlePredictBatch(c *gin.Context) {
	var req predictBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	includeSimulation := boolOrDefault(req.IncludeSimulation, true)
	includeArbitrage := boolOrDefault(req.IncludeArbitrage, true)

	predictions := make([]predictionResponse, 0, len(req.Games))
	arbitrageFound := 0
	var confidenceSum float64
	for _, game := range req.Games {
		resp := s.predictGame(game.toGame(), includeSimulation, includeArbitrage)
		if resp.Arbitrage != nil && resp.Arbitrage.OpportunityFound {
			arbitrageFound++
		}
		confidenceSum += resp.Confidence
		predictions = append(predictions, resp)
	}

	c.JSON(http.StatusOK, gin.H{
		"predictions": predictions,
		"summary": gin.H{
			"total_games":             len(predictions),
			"arbitrage_opportunities": arbitrageFound,
			"average_confidence":      confidenceSum / float64(len(predictions)),
			"timestamp":               time.Now().Format(time.RFC3339),
		},
	})
}

type arbitrageScanRequest struct {
	Games []gameInput `json:"games" binding:"required,min=1,dive"`
}

func (s *Server) handleArbitrageScan(c *gin.Context) {
	var req arbitrageScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	games := make([]odds.Game, 0, len(req.Games))
	for _, g := range req.Games {
		games = append(games, g.toGame())
	}

	c.JSON(http.StatusOK, gin.H{
		"opportunities": s.detector.ScanGames(games),
		"summary":       s.detector.Summary(),
		"timestamp":     time.Now().Format(time.RFC3339),
	})
}

type simulateRequest struct {
	Game        gameInput `json:"game" binding:"required"`
	HomeWinProb *float64  `json:"home_win_prob" binding:"omitempty,min=0,max=1"`
}

func (s *Server) handleSimulate(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	homeWinProb := 0.5
	if req.HomeWinProb != nil {
		homeWinProb = *req.HomeWinProb
	}

	c.JSON(http.StatusOK, gin.H{
		"simulation": s.simulator.SimulateGame(req.Game.toGame(), homeWinProb),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleOdds(c *gin.Context) {
	sport := c.Param("sport")

	var games []odds.Game
	var err error
	if raw := c.Query("hours_ahead"); raw != "" {
		hours, convErr := strconv.Atoi(raw)
		if convErr != nil || hours <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hours_ahead must be a positive integer"})
			return
		}
		games, err = s.oddsClient.UpcomingGames(c.Request.Context(), sport, hours)
	} else {
		games, err = s.oddsClient.Odds(c.Request.Context(), sport, odds.Options{})
	}
	if err != nil {
		s.logger.WithError(err).WithField("sport", sport).Error("odds fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sport":     sport,
		"count":     len(games),
		"games":     games,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"model_status":            "odds_based",
		"arbitrage_stats":         s.detector.Summary(),
		"monte_carlo_simulations": s.simulator.NumSimulations(),
		"uptime_seconds":          int(time.Since(s.startedAt).Seconds()),
		"timestamp":               time.Now().Format(time.RFC3339),
	})
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
