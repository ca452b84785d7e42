package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"crowdcube/internal/metrics"
	"crowdcube/internal/models"
	"crowdcube/internal/repositories"
	"crowdcube/internal/utils"
)

// Session is an issued login token and the moment it stops being valid.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Login(ctx context.Context, creds *models.Login) (*Session, error)
}

type authService struct {
	userRepo repositories.UserRepository
	jwt      *utils.JWTManager
}

func NewAuthService(userRepo repositories.UserRepository, jwt *utils.JWTManager) AuthService {
	return &authService{userRepo: userRepo, jwt: jwt}
}

// Login issues a session for a registered email. There is no password: the
// client authenticates the user upstream and only the email is checked here.
func (a *authService) Login(ctx context.Context, creds *models.Login) (*Session, error) {
	if err := utils.ValidateStruct(creds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	log.Debug().Str("email", creds.Email).Msg("Attempting user login")
	if _, err := a.userRepo.FindByEmail(ctx, creds.Email); err != nil {
		if err == mongo.ErrNoDocuments {
			metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
			log.Warn().Str("email", creds.Email).Msg("Login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		log.Error().Err(err).Str("email", creds.Email).Msg("Error finding user for login")
		return nil, fmt.Errorf("find user for login: %w", err)
	}

	token, expiresAt, err := a.jwt.GenerateJWT(creds.Email)
	if err != nil {
		log.Error().Err(err).Str("email", creds.Email).Msg("Could not generate token for user")
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	log.Info().Str("email", creds.Email).Time("expires_at", expiresAt).Msg("User logged in successfully")
	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}
