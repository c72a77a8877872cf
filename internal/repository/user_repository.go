package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"readscape/internal/model"
)

// UserRepository defines persistence operations for the identity store.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, profile model.Profile) error
}

type userRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB, timeout time.Duration) UserRepository {
	return &userRepository{db: db, timeout: timeout}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	db, cancel := scoped(ctx, r.db, r.timeout)
	defer cancel()
	return db.Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	db, cancel := scoped(ctx, r.db, r.timeout)
	defer cancel()
	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	db, cancel := scoped(ctx, r.db, r.timeout)
	defer cancel()
	var user model.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile overwrites all four profile columns; nil values become NULL.
func (r *userRepository) UpdateProfile(ctx context.Context, id uint, profile model.Profile) error {
	db, cancel := scoped(ctx, r.db, r.timeout)
	defer cancel()
	return db.Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"bio":       profile.Bio,
			"instagram": profile.Instagram,
			"facebook":  profile.Facebook,
			"tiktok":    profile.TikTok,
		}).Error
}
