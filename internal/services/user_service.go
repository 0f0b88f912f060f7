package services

import (
	"fmt"

	"mart/internal/apperrors"
	"mart/internal/models"
	"mart/internal/repositories"
)

// UserService handles business logic related to users.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.repo.GetAll()
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

// CreateUser registers a new user. The email must not already be taken.
func (s *UserService) CreateUser(user *models.User) error {
	taken, err := s.repo.ExistsByEmail(user.Email)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s", apperrors.ErrEmailTaken, user.Email)
	}
	return s.repo.Create(user)
}

// UpdateUser overwrites the mutable fields of an existing user. Changing the
// email re-runs the uniqueness check.
func (s *UserService) UpdateUser(id uint, input *models.User) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if user.Email != input.Email {
		taken, err := s.repo.ExistsByEmail(input.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrEmailTaken, input.Email)
		}
	}

	user.Name = input.Name
	user.Email = input.Email
	user.Address = input.Address
	user.Phone = input.Phone

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser deletes a user by their ID.
func (s *UserService) DeleteUser(id uint) error {
	return s.repo.Delete(id)
}
