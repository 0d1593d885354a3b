package service

import (
	"github.com/imclatam/imc-backend/internal/domain"
	"github.com/imclatam/imc-backend/internal/repository"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Profile resolves the authenticated identity back to its stored record.
func (s *UserService) Profile(user domain.AuthUser) (*domain.User, error) {
	return s.users.FindByEmail(user.Email)
}

func (s *UserService) FindByID(id int64) (*domain.User, error) {
	return s.users.FindByID(id)
}

func (s *UserService) FindAll() ([]domain.User, error) {
	return s.users.FindAll()
}

func (s *UserService) Update(id int64, req domain.UpdateUserRequest) (*domain.User, error) {
	updated, err := s.users.Update(id, req)
	if err != nil {
		if err != domain.ErrUserNotFound {
			logger.Error().Err(err).Int64("user_id", id).Msg("failed to update user")
		}
		return nil, err
	}
	return updated, nil
}
