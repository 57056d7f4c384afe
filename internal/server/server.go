// Package server wires the gin router: the relay route, the analytics API,
// and the operational endpoints.
package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/SpookyGroup/Spectre-Aegis/internal/analytics/arbitrage"
	"github.com/SpookyGroup/Spectre-Aegis/internal/analytics/prediction"
	"github.com/SpookyGroup/Spectre-Aegis/internal/analytics/simulation"
	"github.com/SpookyGroup/Spectre-Aegis/internal/config"
	"github.com/SpookyGroup/Spectre-Aegis/internal/metrics"
	"github.com/SpookyGroup/Spectre-Aegis/internal/middleware"
	"github.com/SpookyGroup/Spectre-Aegis/internal/odds"
	"github.com/SpookyGroup/Spectre-Aegis/internal/ratelimit"
	"github.com/SpookyGroup/Spectre-Aegis/internal/relay"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// Server is the HTTP front of the gateway.
type Server struct {
	cfg       *config.Config
	logger    *logrus.Logger
	router    *gin.Engine
	forwarder *relay.Forwarder

	oddsClient *odds.Client
	predictor  *prediction.Predictor
	detector   *arbitrage.Detector
	simulator  *simulation.Simulator

	startedAt time.Time
}

// New assembles the server from its injected dependencies.
func New(
	cfg *config.Config,
	logger *logrus.Logger,
	forwarder *relay.Forwarder,
	limiter ratelimit.Limiter,
	oddsClient *odds.Client,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(logger))

	s := &Server{
		cfg:        cfg,
		logger:     logger,
		router:     router,
		forwarder:  forwarder,
		oddsClient: oddsClient,
		predictor:  prediction.NewPredictor(),
		detector:   arbitrage.NewDetector(0.005, 0.15),
		simulator:  simulation.NewSimulator(simulation.DefaultSimulations, 42),
		startedAt:  time.Now(),
	}

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		metrics.Registry(), promhttp.HandlerOpts{})))

	api := router.Group("/api")
	api.Use(middleware.RateLimit(limiter, logger))
	api.POST("/check-upcoming-games", s.handleCheckUpcomingGames)

	v1 := api.Group("/v1")
	v1.POST("/predict", s.handlePredict)
	v1.POST("/predict/batch", s.handlePredictBatch)
	v1.POST("/arbitrage/scan", s.handleArbitrageScan)
	v1.POST("/simulate", s.handleSimulate)
	v1.GET("/odds/:sport", s.handleOdds)
	v1.GET("/stats", s.handleStats)

	return s
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run blocks serving HTTP on the configured port.
func (s *Server) Run() error {
	s.logger.WithField("port", s.cfg.Port).Info("starting gateway")
	return s.router.Run(fmt.Sprintf(":%d", s.cfg.Port))
}
