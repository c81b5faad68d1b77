package repository

import (
	"errors" // Sentinel error checks

	"cryptomarket/internal/domain" // Importing domain models
	"cryptomarket/internal/validate"

	"gorm.io/gorm" // GORM ORM library
)

// userProjection keeps the password column out of every read path
var userProjection = []string{"id", "name", "email", "role"}

// UserRepository persists and queries user accounts
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a repository over the given database handle
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user; the unique email index is the real guard
// against concurrent duplicate signups
func (r *UserRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

// FindByEmail returns the user with the given email, or (nil, nil) when none
// exists
func (r *UserRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByFilter returns users matching the validated exact-match filter,
// without the password column
func (r *UserRepository) FindByFilter(in validate.FilterUsersInput) ([]domain.User, error) {
	limit, offset := pageWindow(in.Limit, in.Offset)
	query := r.db.Model(&domain.User{}).Select(userProjection)
	if in.Name != nil {
		query = query.Where("name = ?", *in.Name) // Filter by name
	}
	if in.Email != nil {
		query = query.Where("email = ?", *in.Email) // Filter by email
	}
	if in.Role != nil {
		query = query.Where("role = ?", *in.Role) // Filter by role
	}
	users := []domain.User{}
	if err := query.Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindAll returns every user without the password column
func (r *UserRepository) FindAll() ([]domain.User, error) {
	users := []domain.User{}
	if err := r.db.Model(&domain.User{}).Select(userProjection).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update applies only the supplied optional fields and returns the updated
// record
func (r *UserRepository) Update(id uint, in validate.UpdateUserInput) (*domain.User, error) {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Role != nil {
		updates["role"] = *in.Role
	}
	var user domain.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}
