package handlers

import (
	"context"
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"crowdcube/internal/models"
	"crowdcube/internal/services"
)

type stubAuthService struct {
	login func(ctx context.Context, creds *models.Login) (*services.Session, error)
}

func (s *stubAuthService) Login(ctx context.Context, creds *models.Login) (*services.Session, error) {
	return s.login(ctx, creds)
}

type stubUserService struct {
	register func(ctx context.Context, user models.User) (*models.InsertResult, error)
}

func (s *stubUserService) RegisterUser(ctx context.Context, user models.User) (*models.InsertResult, error) {
	return s.register(ctx, user)
}

// stubCampaignService fails loudly for any method a test did not wire.
type stubCampaignService struct {
	create    func(ctx context.Context, c models.Campaign) (*models.InsertResult, error)
	list      func(ctx context.Context) ([]models.Campaign, error)
	running   func(ctx context.Context) ([]models.Campaign, error)
	owner     func(ctx context.Context, requester, userEmail string) ([]models.Campaign, error)
	get       func(ctx context.Context, id primitive.ObjectID) (models.Campaign, error)
	update    func(ctx context.Context, requester string, id primitive.ObjectID, fields models.Document) (*models.UpdateResult, error)
	increment func(ctx context.Context, id primitive.ObjectID, delta json.Number) (*models.UpdateResult, error)
	remove    func(ctx context.Context, requester string, id primitive.ObjectID) (*models.DeleteResult, error)
}

func (s *stubCampaignService) CreateCampaign(ctx context.Context, c models.Campaign) (*models.InsertResult, error) {
	return s.create(ctx, c)
}

func (s *stubCampaignService) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	return s.list(ctx)
}

func (s *stubCampaignService) ListRunningCampaigns(ctx context.Context) ([]models.Campaign, error) {
	return s.running(ctx)
}

func (s *stubCampaignService) ListOwnerCampaigns(ctx context.Context, requester, userEmail string) ([]models.Campaign, error) {
	return s.owner(ctx, requester, userEmail)
}

func (s *stubCampaignService) GetCampaign(ctx context.Context, id primitive.ObjectID) (models.Campaign, error) {
	return s.get(ctx, id)
}

func (s *stubCampaignService) UpdateCampaign(ctx context.Context, requester string, id primitive.ObjectID, fields models.Document) (*models.UpdateResult, error) {
	return s.update(ctx, requester, id, fields)
}

func (s *stubCampaignService) IncrementFundBalance(ctx context.Context, id primitive.ObjectID, delta json.Number) (*models.UpdateResult, error) {
	return s.increment(ctx, id, delta)
}

func (s *stubCampaignService) DeleteCampaign(ctx context.Context, requester string, id primitive.ObjectID) (*models.DeleteResult, error) {
	return s.remove(ctx, requester, id)
}

type stubDonationService struct {
	create func(ctx context.Context, d models.Donation) (*models.InsertResult, error)
	list   func(ctx context.Context, requester, userEmail string) ([]models.Donation, error)
}

func (s *stubDonationService) CreateDonation(ctx context.Context, d models.Donation) (*models.InsertResult, error) {
	return s.create(ctx, d)
}

func (s *stubDonationService) ListDonorDonations(ctx context.Context, requester, userEmail string) ([]models.Donation, error) {
	return s.list(ctx, requester, userEmail)
}
