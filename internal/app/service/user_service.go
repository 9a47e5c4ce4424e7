package service

import (
	"errors"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidRole = errors.New("invalid user role")

// UserService is the back-office view over accounts; self-service profile
// operations live on AuthService.
type UserService interface {
	ListUsers(role *model.UserRole, limit, offset int) ([]model.User, error)
	GetUserByID(id uint) (*model.User, error)
	UpdateRole(id uint, role model.UserRole) error
	DeleteUser(id uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(role *model.UserRole, limit, offset int) ([]model.User, error) {
	users, err := s.userRepo.FindAll(role, limit, offset)
	if err != nil {
		logger.Error("Failed to list users", err)
		return nil, err
	}
	return users, nil
}

func (s *userService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateRole(id uint, role model.UserRole) error {
	logger.Info("Updating user role", map[string]interface{}{
		"user_id": id,
		"role":    role,
	})

	switch role {
	case model.RoleUser, model.RoleSeller, model.RoleAdmin:
	default:
		return ErrInvalidRole
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	user.Role = role
	return s.userRepo.Update(user)
}

func (s *userService) DeleteUser(id uint) error {
	logger.Info("Deleting user", map[string]interface{}{
		"user_id": id,
	})

	if _, err := s.GetUserByID(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}
