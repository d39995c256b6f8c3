package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/scubalog/dive-log-api/internal/core/domain"
	"github.com/scubalog/dive-log-api/internal/core/ports"
	"github.com/scubalog/dive-log-api/internal/pkg/password"
)

// AuthService verifies credentials and issues HS256 bearer tokens carrying
// the user id. Token freshness is the middleware's concern on the way back in.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
	salt      string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, jwtSecret, salt string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, salt: salt, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Login(ctx context.Context, email, plain string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.E(domain.ErrUserNotFound, "User not found!")
		}
		return "", err
	}

	if !user.Enabled {
		return "", domain.E(domain.ErrAccountDisabled, "The account have been disabled!")
	}

	if !password.Compare(plain, s.salt, user.PasswordHash) {
		return "", domain.E(domain.ErrInvalidCredentials, "Invalid credentials!")
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	return token, nil
}

func (s *AuthService) generateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
