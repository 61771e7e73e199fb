package repository

import (
	"context"
	"errors"
	"strings"

	"lingolearn-backend/internal/domain"

	"gorm.io/gorm"
)

// ========== USER REPOSITORY ==========

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil && isDuplicate(err) {
		return domain.ErrConflict("user with this email already exists")
	}
	return err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound("user not found")
	}
	return &user, err
}

func (r *userRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound("user not found")
	}
	return &user, err
}

func (r *userRepo) GetByProvider(ctx context.Context, provider domain.AuthProvider, externalID string) (*domain.User, error) {
	var user domain.User
	q := r.db.WithContext(ctx).Where("provider = ?", provider)
	switch provider {
	case domain.ProviderGoogle:
		q = q.Where("google_id = ?", externalID)
	case domain.ProviderFacebook:
		q = q.Where("facebook_id = ?", externalID)
	default:
		return nil, domain.ErrValidation("provider %q has no external id", provider)
	}
	err := q.First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound("user not found")
	}
	return &user, err
}

func (r *userRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	if err != nil && isDuplicate(err) {
		return domain.ErrConflict("user with this email already exists")
	}
	return err
}

func (r *userRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.User{}, id).Error
}

// isDuplicate detects a unique-index violation from the driver.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}
