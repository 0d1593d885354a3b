package service

import (
	"os"

	"github.com/imclatam/imc-backend/internal/domain"
	"github.com/imclatam/imc-backend/internal/repository"
	"github.com/imclatam/imc-backend/internal/token"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "service").Logger()

// AuthService orchestrates registration and login against the user store
// and the token issuer.
type AuthService struct {
	users  repository.UserRepository
	issuer *token.Issuer
}

func NewAuthService(users repository.UserRepository, issuer *token.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

// Register creates the user and returns a signed token for it. A unique-
// constraint rejection from the store surfaces as ErrDuplicateEmail; any
// other store failure is opaque to the caller.
func (s *AuthService) Register(email, rawPassword string) (string, error) {
	user, err := s.users.Create(email, rawPassword)
	if err != nil {
		if repository.IsDuplicateEntry(err) {
			return "", domain.ErrDuplicateEmail
		}
		logger.Error().Err(err).Str("email", email).Msg("failed to register user")
		return "", domain.ErrRegistrationFailed
	}

	tok, err := s.issuer.Sign(user.ID, user.Email)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("failed to sign token")
		return "", domain.ErrRegistrationFailed
	}
	return tok, nil
}

// Login verifies the credentials and returns a signed token. An unknown
// email and a wrong password produce the same error so callers cannot
// enumerate accounts.
func (s *AuthService) Login(email, rawPassword string) (string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("failed to look up user for login")
		return "", domain.ErrLoginFailed
	}
	if user == nil {
		return "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(rawPassword)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	tok, err := s.issuer.Sign(user.ID, user.Email)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("failed to sign token")
		return "", domain.ErrLoginFailed
	}
	return tok, nil
}
