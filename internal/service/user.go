package service

import (
	"errors" // Sentinel errors
	"fmt"    // Error wrapping

	"cryptomarket/internal/domain"     // Importing domain models
	"cryptomarket/internal/repository" // Persistence layer
	"cryptomarket/internal/validate"   // Validated inputs

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // Record-not-found check
)

// Typed service errors; handlers map these to HTTP statuses instead of
// inspecting response shapes
var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

// hashCost matches the original signup flow
const hashCost = 10

// UserService implements the user CRUD flows over the repository
type UserService struct {
	users *repository.UserRepository
}

// NewUserService creates the service over the given repository
func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// CreateUser hashes the password and persists a new account. A taken email
// yields ErrEmailTaken; the unique index still backs the check under
// concurrent signups.
func (s *UserService) CreateUser(in validate.CreateUserInput) (*domain.User, error) {
	existing, err := s.users.FindByEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), hashCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user := domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Role:     in.Role,
	}
	if err := s.users.Create(&user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	// Log the signup without any credential material
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User created")
	user.Password = "" // Never hand the hash back to callers
	return &user, nil
}

// UpdateUser applies only the supplied optional fields; the password is not
// updatable through this path
func (s *UserService) UpdateUser(id uint, in validate.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.Update(id, in)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	user.Password = ""
	return user, nil
}

// FindUsersByFilter returns users matching the validated filter
func (s *UserService) FindUsersByFilter(in validate.FilterUsersInput) ([]domain.User, error) {
	return s.users.FindByFilter(in)
}

// FindAllUsers returns every user
func (s *UserService) FindAllUsers() ([]domain.User, error) {
	return s.users.FindAll()
}
