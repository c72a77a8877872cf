package service

import (
	"context"
	"fmt"
	"time"

	"readscape/internal/cache"
	"readscape/internal/db"
	apperrors "readscape/internal/errors"
	"readscape/internal/model"
	"readscape/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// CredentialHasher turns a password into its stored form and checks it later.
type CredentialHasher interface {
	Hash(password string) (string, error)
	Matches(stored, password string) bool
}

// IdentityService handles user accounts and profiles.
type IdentityService interface {
	Register(ctx context.Context, username, password string) (uint, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, profile model.Profile) error
	GetUser(ctx context.Context, userID uint) (*model.User, error)
}

type identityService struct {
	users  repository.UserRepository
	hasher CredentialHasher
	cache  *cache.Client
}

// NewIdentityService creates a new identity service. cache may be nil.
func NewIdentityService(users repository.UserRepository, hasher CredentialHasher, cache *cache.Client) IdentityService {
	return &identityService{
		users:  users,
		hasher: hasher,
		cache:  cache,
	}
}

func (s *identityService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Register creates a user and returns its id.
func (s *identityService) Register(ctx context.Context, username, password string) (uint, error) {
	existing, err := s.users.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return 0, apperrors.ErrDuplicateUsername
	}
	if err != nil && !db.IsNotFound(err) {
		return 0, fmt.Errorf("check username: %w", err)
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Password: stored,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// a concurrent registration won the unique index
		if db.IsDuplicateKey(err) {
			return 0, apperrors.ErrDuplicateUsername
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return user.ID, nil
}

// Login returns the user matching both username and password.
func (s *identityService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !s.hasher.Matches(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile overwrites all four profile fields.
func (s *identityService) UpdateProfile(ctx context.Context, userID uint, profile model.Profile) error {
	if err := s.users.UpdateProfile(ctx, userID, profile); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return nil
}

// GetUser retrieves a user by id with caching.
func (s *identityService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(userID), &cached) {
		return &cached, nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(userID), user, userCacheTTL)
	return user, nil
}
