package repositories

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"crowdcube/internal/database"
	"crowdcube/internal/models"
	"crowdcube/internal/utils"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign models.Campaign) (*models.InsertResult, error)
	FindAll(ctx context.Context) ([]models.Campaign, error)
	FindRunning(ctx context.Context, now string, limit int64) ([]models.Campaign, error)
	FindByOwner(ctx context.Context, email string) ([]models.Campaign, error)
	FindByID(ctx context.Context, campaignID primitive.ObjectID) (models.Campaign, error)
	Update(ctx context.Context, campaignID primitive.ObjectID, owner string, updateFields bson.M) (*models.UpdateResult, error)
	IncrementFundBalance(ctx context.Context, campaignID primitive.ObjectID, delta interface{}) (*models.UpdateResult, error)
	Delete(ctx context.Context, campaignID primitive.ObjectID, owner string) (*models.DeleteResult, error)
	CountAll(ctx context.Context) (int64, error)
}

type campaignRepository struct {
	db database.Service
}

func NewCampaignRepository(db database.Service) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) collection() *mongo.Collection {
	return r.db.Collection(database.CampaignsCollection)
}

func (r *campaignRepository) Create(ctx context.Context, campaign models.Campaign) (*models.InsertResult, error) {
	qt := utils.NewQueryTimer("create", "campaign")
	defer qt.Done()

	campaign["_id"] = primitive.NewObjectID()

	result, err := r.collection().InsertOne(ctx, campaign)
	if err != nil {
		qt.Fail()
		log.Error().Err(err).Str("owner", campaign.Owner()).Msg("Failed to insert campaign")
		return nil, fmt.Errorf("failed to insert campaign: %w", err)
	}
	return models.NewInsertResult(result), nil
}

func (r *campaignRepository) FindAll(ctx context.Context) ([]models.Campaign, error) {
	return r.find(ctx, "findAll", bson.M{})
}

// FindRunning returns at most limit campaigns whose deadline sorts after now.
// Deadlines are ISO-8601 strings, so the comparison is lexicographic.
func (r *campaignRepository) FindRunning(ctx context.Context, now string, limit int64) ([]models.Campaign, error) {
	filter := bson.M{"deadline": bson.M{"$gt": now}}
	return r.find(ctx, "findRunning", filter, options.Find().SetLimit(limit))
}

func (r *campaignRepository) FindByOwner(ctx context.Context, email string) ([]models.Campaign, error) {
	return r.find(ctx, "findByOwner", bson.M{"email": email})
}

func (r *campaignRepository) find(ctx context.Context, queryType string, filter bson.M, opts ...*options.FindOptions) ([]models.Campaign, error) {
	qt := utils.NewQueryTimer(queryType, "campaign")
	defer qt.Done()

	cursor, err := r.collection().Find(ctx, filter, opts...)
	if err != nil {
		qt.Fail()
		log.Error().Err(err).Str("query", queryType).Msg("Database error fetching campaigns")
		return nil, fmt.Errorf("database error fetching campaigns: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.Campaign{}
	if err := cursor.All(ctx, &results); err != nil {
		qt.Fail()
		log.Error().Err(err).Str("query", queryType).Msg("Error decoding campaign results")
		return nil, fmt.Errorf("error decoding campaign results: %w", err)
	}
	if results == nil {
		results = []models.Campaign{}
	}
	return results, nil
}

func (r *campaignRepository) FindByID(ctx context.Context, campaignID primitive.ObjectID) (models.Campaign, error) {
	qt := utils.NewQueryTimer("findByID", "campaign")
	defer qt.Done()

	var campaign models.Campaign
	err := r.collection().FindOne(ctx, bson.M{"_id": campaignID}).Decode(&campaign)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			qt.Fail()
			log.Error().Err(err).Str("campaign_id", campaignID.Hex()).Msg("Error fetching campaign")
		}
		return nil, err // Can be mongo.ErrNoDocuments
	}
	return campaign, nil
}

// Update sets updateFields on the campaign with this id owned by owner.
func (r *campaignRepository) Update(ctx context.Context, campaignID primitive.ObjectID, owner string, updateFields bson.M) (*models.UpdateResult, error) {
	qt := utils.NewQueryTimer("update", "campaign")
	defer qt.Done()

	filter := bson.M{"_id": campaignID, "email": owner}
	update := bson.M{"$set": updateFields}
	result, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		qt.Fail()
		log.Error().Err(err).Str("campaign_id", campaignID.Hex()).Msg("Error updating campaign")
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}
	return models.NewUpdateResult(result), nil
}

// IncrementFundBalance adds delta to fundBalance in a single $inc, so
// concurrent increments never lose each other's writes.
func (r *campaignRepository) IncrementFundBalance(ctx context.Context, campaignID primitive.ObjectID, delta interface{}) (*models.UpdateResult, error) {
	qt := utils.NewQueryTimer("incrementFundBalance", "campaign")
	defer qt.Done()

	filter := bson.M{"_id": campaignID}
	update := bson.M{"$inc": bson.M{"fundBalance": delta}}
	result, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		qt.Fail()
		log.Error().Err(err).Str("campaign_id", campaignID.Hex()).Msg("Error incrementing fund balance")
		return nil, fmt.Errorf("failed to increment fund balance: %w", err)
	}
	return models.NewUpdateResult(result), nil
}

func (r *campaignRepository) Delete(ctx context.Context, campaignID primitive.ObjectID, owner string) (*models.DeleteResult, error) {
	qt := utils.NewQueryTimer("delete", "campaign")
	defer qt.Done()

	filter := bson.M{"_id": campaignID, "email": owner}
	result, err := r.collection().DeleteOne(ctx, filter)
	if err != nil {
		qt.Fail()
		log.Error().Err(err).Str("campaign_id", campaignID.Hex()).Msg("Error deleting campaign")
		return nil, fmt.Errorf("database error deleting campaign: %w", err)
	}
	return models.NewDeleteResult(result), nil
}

func (r *campaignRepository) CountAll(ctx context.Context) (int64, error) {
	qt := utils.NewQueryTimer("countAll", "campaign")
	defer qt.Done()

	count, err := r.collection().CountDocuments(ctx, bson.M{})
	if err != nil {
		qt.Fail()
		return 0, fmt.Errorf("failed to count campaigns: %w", err)
	}
	return count, nil
}
