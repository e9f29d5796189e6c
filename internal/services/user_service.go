package services

import (
	"github.com/barberscore/registry/internal/models"
	"github.com/barberscore/registry/internal/repositories"
)

type UserService struct {
	userRepo *repositories.UserRepository
}

func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUser creates a new user
func (s *UserService) CreateUser(user *models.User) error {
	return s.userRepo.Create(user)
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetUserByAccessToken resolves a bearer token to a user
func (s *UserService) GetUserByAccessToken(token string) (*models.User, error) {
	return s.userRepo.GetByAccessToken(token)
}

// GetUsernames maps owner IDs to account usernames
func (s *UserService) GetUsernames(ids []string) ([]string, error) {
	return s.userRepo.GetUsernames(ids)
}
