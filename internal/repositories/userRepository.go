package repositories

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"crowdcube/internal/database"
	"crowdcube/internal/models"
	"crowdcube/internal/utils"
)

type UserRepository interface {
	Create(ctx context.Context, user models.User) (*models.InsertResult, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	CountAll(ctx context.Context) (int64, error)
}

type userRepository struct {
	db database.Service
}

func NewUserRepository(db database.Service) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user. A second user with the same email fails with a
// duplicate key error from the unique email index.
func (r *userRepository) Create(ctx context.Context, user models.User) (*models.InsertResult, error) {
	qt := utils.NewQueryTimer("create", "user")
	defer qt.Done()

	user["_id"] = primitive.NewObjectID()

	collection := r.db.Collection(database.UsersCollection)
	result, err := collection.InsertOne(ctx, user)
	if err != nil {
		qt.Fail()
		if !mongo.IsDuplicateKeyError(err) {
			log.Error().Err(err).Str("email", user.Email()).Msg("Failed to insert user into database")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return models.NewInsertResult(result), nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	qt := utils.NewQueryTimer("findByEmail", "user")
	defer qt.Done()

	collection := r.db.Collection(database.UsersCollection)
	var user models.User
	err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			qt.Fail()
		}
		return nil, err // Can be mongo.ErrNoDocuments
	}
	return user, nil
}

func (r *userRepository) CountAll(ctx context.Context) (int64, error) {
	qt := utils.NewQueryTimer("countAll", "user")
	defer qt.Done()

	collection := r.db.Collection(database.UsersCollection)
	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		qt.Fail()
		log.Error().Err(err).Msg("Failed to count total users")
		return 0, fmt.Errorf("failed to count total users: %w", err)
	}
	return count, nil
}
