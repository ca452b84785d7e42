package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// User Activity Metrics
	NewUsersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_new_users_total",
		Help: "Total number of new user registrations.",
	})
	DuplicateUsersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_duplicate_users_total",
		Help: "Total number of registrations rejected because the email already exists.",
	})
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_login_attempts_total",
		Help: "Total number of login attempts (successful and failed).",
	}, []string{"status"}) // status: "success" or "failed"

	// Crowdfunding Metrics
	CampaignCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_campaign_created_total",
		Help: "Total number of campaigns created.",
	})
	CampaignDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_campaign_deleted_total",
		Help: "Total number of campaigns deleted.",
	})
	FundIncrementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_fund_increments_total",
		Help: "Total number of fund balance increments applied.",
	})
	DonationCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_donation_created_total",
		Help: "Total number of donations recorded.",
	})

	TotalUsers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "app_total_users",
		Help: "Total number of registered users in the application.",
	})
	TotalCampaigns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "app_total_campaigns",
		Help: "Total number of campaigns in the application.",
	})
)
