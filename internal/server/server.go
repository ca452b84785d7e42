package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"crowdcube/internal/config"
	"crowdcube/internal/database"
	"crowdcube/internal/middlewares"
	"crowdcube/internal/repositories"
	"crowdcube/internal/services"
	"crowdcube/internal/utils"
)

type Server struct {
	cfg             *config.Config
	httpServer      *http.Server
	db              database.Service
	jwt             *utils.JWTManager
	rateLimiter     *middlewares.RateLimiter
	promMiddleware  *middlewares.PrometheusMiddleware
	authService     services.AuthService
	userService     services.UserService
	campaignService services.CampaignService
	donationService services.DonationService
	statsService    *services.StatsService

	// cancels the background workers started by Start
	stopWorkers context.CancelFunc
}

func NewServer(cfg *config.Config, db database.Service) *Server {
	userRepo := repositories.NewUserRepository(db)
	campaignRepo := repositories.NewCampaignRepository(db)
	donationRepo := repositories.NewDonationRepository(db)

	jwt := utils.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	s := &Server{
		cfg:             cfg,
		db:              db,
		jwt:             jwt,
		rateLimiter:     middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		promMiddleware:  middlewares.NewPrometheusMiddleware(prometheus.DefaultRegisterer),
		authService:     services.NewAuthService(userRepo, jwt),
		userService:     services.NewUserService(userRepo),
		campaignService: services.NewCampaignService(campaignRepo),
		donationService: services.NewDonationService(donationRepo),
		statsService:    services.NewStatsService(userRepo, campaignRepo, 30*time.Second),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// Start launches the background workers and blocks serving HTTP.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopWorkers = cancel

	go s.rateLimiter.CleanupVisitors(ctx)
	go s.statsService.Run(ctx)

	log.Info().Int("port", s.cfg.Port).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}
	if s.stopWorkers != nil {
		s.stopWorkers()
	}
	if err := s.db.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Error disconnecting from MongoDB")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
