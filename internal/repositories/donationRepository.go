package repositories

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"crowdcube/internal/database"
	"crowdcube/internal/models"
	"crowdcube/internal/utils"
)

type DonationRepository interface {
	Create(ctx context.Context, donation models.Donation) (*models.InsertResult, error)
	FindByDonor(ctx context.Context, email string) ([]models.Donation, error)
}

type donationRepository struct {
	db database.Service
}

func NewDonationRepository(db database.Service) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation models.Donation) (*models.InsertResult, error) {
	qt := utils.NewQueryTimer("create", "donation")
	defer qt.Done()

	donation["_id"] = primitive.NewObjectID()

	collection := r.db.Collection(database.DonationsCollection)
	result, err := collection.InsertOne(ctx, donation)
	if err != nil {
		qt.Fail()
		log.Error().Err(err).Str("donor", donation.Donor()).Msg("Failed to insert donation")
		return nil, fmt.Errorf("failed to insert donation: %w", err)
	}
	return models.NewInsertResult(result), nil
}

func (r *donationRepository) FindByDonor(ctx context.Context, email string) ([]models.Donation, error) {
	qt := utils.NewQueryTimer("findByDonor", "donation")
	defer qt.Done()

	collection := r.db.Collection(database.DonationsCollection)
	cursor, err := collection.Find(ctx, bson.M{"email": email})
	if err != nil {
		qt.Fail()
		log.Error().Err(err).Str("donor", email).Msg("Database error fetching donations")
		return nil, fmt.Errorf("database error fetching donations: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.Donation{}
	if err := cursor.All(ctx, &results); err != nil {
		qt.Fail()
		return nil, fmt.Errorf("error decoding donation results: %w", err)
	}
	if results == nil {
		results = []models.Donation{}
	}
	return results, nil
}
