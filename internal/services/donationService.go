package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"crowdcube/internal/metrics"
	"crowdcube/internal/models"
	"crowdcube/internal/repositories"
)

type DonationService interface {
	CreateDonation(ctx context.Context, donation models.Donation) (*models.InsertResult, error)
	ListDonorDonations(ctx context.Context, requester, userEmail string) ([]models.Donation, error)
}

type donationService struct {
	donationRepo repositories.DonationRepository
}

func NewDonationService(donationRepo repositories.DonationRepository) DonationService {
	return &donationService{donationRepo: donationRepo}
}

// CreateDonation records the donation as sent. The referenced campaign and
// the amount are not checked.
func (s *donationService) CreateDonation(ctx context.Context, donation models.Donation) (*models.InsertResult, error) {
	if len(donation) == 0 {
		return nil, fmt.Errorf("%w: donation is empty", ErrInvalidInput)
	}
	delete(donation, "_id")

	result, err := s.donationRepo.Create(ctx, donation)
	if err != nil {
		return nil, err
	}

	metrics.DonationCreatedTotal.Inc()
	log.Info().Interface("donation_id", result.InsertedID).Str("donor", donation.Donor()).Msg("Donation recorded")
	return result, nil
}

func (s *donationService) ListDonorDonations(ctx context.Context, requester, userEmail string) ([]models.Donation, error) {
	email, err := resolveEmail(requester, userEmail)
	if err != nil {
		log.Warn().Str("requester", requester).Str("user_email", userEmail).Msg("Refused listing another user's donations")
		return nil, err
	}
	return s.donationRepo.FindByDonor(ctx, email)
}
