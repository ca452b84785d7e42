package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"crowdcube/internal/metrics"
	"crowdcube/internal/repositories"
)

// StatsService keeps the total users/campaigns gauges in line with the store.
type StatsService struct {
	userRepo     repositories.UserRepository
	campaignRepo repositories.CampaignRepository
	interval     time.Duration
}

func NewStatsService(userRepo repositories.UserRepository, campaignRepo repositories.CampaignRepository, interval time.Duration) *StatsService {
	return &StatsService{userRepo: userRepo, campaignRepo: campaignRepo, interval: interval}
}

// Run refreshes the gauges immediately and then every interval until ctx ends.
func (s *StatsService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.Refresh(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *StatsService) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if count, err := s.userRepo.CountAll(ctx); err != nil {
		log.Error().Err(err).Msg("Error updating total users gauge")
	} else {
		metrics.TotalUsers.Set(float64(count))
	}

	if count, err := s.campaignRepo.CountAll(ctx); err != nil {
		log.Error().Err(err).Msg("Error updating total campaigns gauge")
	} else {
		metrics.TotalCampaigns.Set(float64(count))
	}
}
