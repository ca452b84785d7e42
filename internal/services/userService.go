package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"crowdcube/internal/metrics"
	"crowdcube/internal/models"
	"crowdcube/internal/repositories"
	"crowdcube/internal/utils"
)

// UserService defines the interface for user-related business logic.
type UserService interface {
	RegisterUser(ctx context.Context, user models.User) (*models.InsertResult, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// RegisterUser stores a new user. Uniqueness is left to the unique email
// index so two concurrent registrations cannot both succeed.
func (s *userService) RegisterUser(ctx context.Context, user models.User) (*models.InsertResult, error) {
	email := user.Email()
	if err := utils.ValidateStruct(models.UserInput{Email: email}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	log.Debug().Str("email", email).Msg("Attempting to register user")
	result, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			metrics.DuplicateUsersTotal.Inc()
			log.Info().Str("email", email).Msg("User already added")
			return nil, fmt.Errorf("%w: user %s", ErrConflict, email)
		}
		return nil, err
	}

	metrics.NewUsersTotal.Inc()
	metrics.TotalUsers.Inc()
	log.Info().Str("email", email).Interface("user_id", result.InsertedID).Msg("User registered successfully")
	return result, nil
}
