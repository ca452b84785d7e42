package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"crowdcube/internal/metrics"
	"crowdcube/internal/models"
	"crowdcube/internal/repositories"
)

const (
	// RunningCampaignsLimit caps GET /running-campaigns.
	RunningCampaignsLimit = 8

	// isoLayout matches JavaScript's Date.toISOString, which is how the web
	// client writes deadlines.
	isoLayout = "2006-01-02T15:04:05.000Z"
)

// CampaignService defines the interface for campaign-related business logic.
type CampaignService interface {
	CreateCampaign(ctx context.Context, campaign models.Campaign) (*models.InsertResult, error)
	ListCampaigns(ctx context.Context) ([]models.Campaign, error)
	ListRunningCampaigns(ctx context.Context) ([]models.Campaign, error)
	ListOwnerCampaigns(ctx context.Context, requester, userEmail string) ([]models.Campaign, error)
	GetCampaign(ctx context.Context, campaignID primitive.ObjectID) (models.Campaign, error)
	UpdateCampaign(ctx context.Context, requester string, campaignID primitive.ObjectID, fields models.Document) (*models.UpdateResult, error)
	IncrementFundBalance(ctx context.Context, campaignID primitive.ObjectID, delta json.Number) (*models.UpdateResult, error)
	DeleteCampaign(ctx context.Context, requester string, campaignID primitive.ObjectID) (*models.DeleteResult, error)
}

type campaignService struct {
	campaignRepo repositories.CampaignRepository
	now          func() time.Time
}

func NewCampaignService(campaignRepo repositories.CampaignRepository) CampaignService {
	return &campaignService{campaignRepo: campaignRepo, now: time.Now}
}

func (s *campaignService) CreateCampaign(ctx context.Context, campaign models.Campaign) (*models.InsertResult, error) {
	if len(campaign) == 0 {
		return nil, fmt.Errorf("%w: campaign is empty", ErrInvalidInput)
	}
	delete(campaign, "_id")

	result, err := s.campaignRepo.Create(ctx, campaign)
	if err != nil {
		return nil, err
	}

	metrics.CampaignCreatedTotal.Inc()
	metrics.TotalCampaigns.Inc()
	log.Info().Interface("campaign_id", result.InsertedID).Str("owner", campaign.Owner()).Msg("Campaign added successfully")
	return result, nil
}

func (s *campaignService) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	return s.campaignRepo.FindAll(ctx)
}

func (s *campaignService) ListRunningCampaigns(ctx context.Context) ([]models.Campaign, error) {
	now := s.now().UTC().Format(isoLayout)
	return s.campaignRepo.FindRunning(ctx, now, RunningCampaignsLimit)
}

func (s *campaignService) ListOwnerCampaigns(ctx context.Context, requester, userEmail string) ([]models.Campaign, error) {
	email, err := resolveEmail(requester, userEmail)
	if err != nil {
		log.Warn().Str("requester", requester).Str("user_email", userEmail).Msg("Refused listing another user's campaigns")
		return nil, err
	}
	return s.campaignRepo.FindByOwner(ctx, email)
}

func (s *campaignService) GetCampaign(ctx context.Context, campaignID primitive.ObjectID) (models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: campaign %s", ErrNotFound, campaignID.Hex())
		}
		return nil, err
	}
	return campaign, nil
}

// UpdateCampaign merges fields into the requester's campaign. _id and the
// owner email are never written. A missing campaign yields a zero result.
func (s *campaignService) UpdateCampaign(ctx context.Context, requester string, campaignID primitive.ObjectID, fields models.Document) (*models.UpdateResult, error) {
	updateFields := bson.M(fields.Without("_id", "email"))
	if len(updateFields) == 0 {
		return nil, fmt.Errorf("%w: no valid fields provided for update", ErrInvalidInput)
	}

	result, err := s.campaignRepo.Update(ctx, campaignID, requester, updateFields)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		if err := s.checkOwnership(ctx, requester, campaignID); err != nil {
			return nil, err
		}
	}

	log.Info().Str("campaign_id", campaignID.Hex()).Int64("matched", result.MatchedCount).Int64("modified", result.ModifiedCount).Msg("Campaign updated")
	return result, nil
}

// IncrementFundBalance adds delta to the campaign's fundBalance atomically.
// Integer deltas stay integers.
func (s *campaignService) IncrementFundBalance(ctx context.Context, campaignID primitive.ObjectID, delta json.Number) (*models.UpdateResult, error) {
	var value interface{}
	if i, err := delta.Int64(); err == nil {
		value = i
	} else if f, err := delta.Float64(); err == nil {
		value = f
	} else {
		return nil, fmt.Errorf("%w: fundBalance must be a number", ErrInvalidInput)
	}

	result, err := s.campaignRepo.IncrementFundBalance(ctx, campaignID, value)
	if err != nil {
		return nil, err
	}

	if result.ModifiedCount > 0 {
		metrics.FundIncrementsTotal.Inc()
	}
	log.Info().Str("campaign_id", campaignID.Hex()).Interface("delta", value).Int64("matched", result.MatchedCount).Msg("Fund balance incremented")
	return result, nil
}

func (s *campaignService) DeleteCampaign(ctx context.Context, requester string, campaignID primitive.ObjectID) (*models.DeleteResult, error) {
	result, err := s.campaignRepo.Delete(ctx, campaignID, requester)
	if err != nil {
		return nil, err
	}
	if result.DeletedCount == 0 {
		if err := s.checkOwnership(ctx, requester, campaignID); err != nil {
			return nil, err
		}
		return result, nil
	}

	metrics.CampaignDeletedTotal.Inc()
	metrics.TotalCampaigns.Dec()
	log.Info().Str("campaign_id", campaignID.Hex()).Str("owner", requester).Msg("Campaign deleted successfully")
	return result, nil
}

// checkOwnership runs after a write filtered on (id, owner) matched nothing.
// It tells "no such campaign" (nil) apart from "someone else's" (ErrForbidden).
func (s *campaignService) checkOwnership(ctx context.Context, requester string, campaignID primitive.ObjectID) error {
	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil
		}
		return err
	}
	if campaign.Owner() != requester {
		log.Warn().Str("campaign_id", campaignID.Hex()).Str("requester", requester).Msg("Refused change to a campaign owned by someone else")
		return fmt.Errorf("%w: campaign %s is not owned by %s", ErrForbidden, campaignID.Hex(), requester)
	}
	return nil
}
