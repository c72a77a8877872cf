package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "readscape/internal/errors"
	"readscape/internal/model"
)

func TestIdentityService_Register(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password  string
		setupMock func(*MockUserRepository)
		wantID    uint
		wantErr   error
	}{
		{
			name:     "successful registration",
			username: "alice",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Username == "alice" && u.Password == "1wp"
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*model.User).ID = 1
				}).Return(nil)
			},
			wantID: 1,
		},
		{
			name:     "username taken",
			username: "alice",
			password: "pw9",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)
			},
			wantErr: apperrors.ErrDuplicateUsername,
		},
		{
			name:     "lost race on unique index",
			username: "bob",
			password: "pw",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
			},
			wantErr: apperrors.ErrDuplicateUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)

			svc := NewIdentityService(repo, reverseHasher{}, nil)
			id, err := svc.Register(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestIdentityService_RegisterStorageFailure(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(nil, errors.New("connection refused"))

	svc := NewIdentityService(repo, reverseHasher{}, nil)
	_, err := svc.Register(context.Background(), "alice", "pw1")

	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIdentityService_Login(t *testing.T) {
	stored := &model.User{ID: 1, Username: "alice", Password: "1wp"}

	tests := []struct {
		name      string
		username  string
		password  string
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name:     "valid credentials",
			username: "alice",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)

			svc := NewIdentityService(repo, reverseHasher{}, nil)
			user, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(1), user.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestIdentityService_UpdateProfile(t *testing.T) {
	profile := model.Profile{Bio: strPtr("reader")}

	repo := new(MockUserRepository)
	repo.On("UpdateProfile", mock.Anything, uint(1), profile).Return(nil)

	svc := NewIdentityService(repo, reverseHasher{}, nil)
	require.NoError(t, svc.UpdateProfile(context.Background(), 1, profile))
	repo.AssertExpectations(t)
}

func TestIdentityService_GetUser(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Username: "alice"}, nil)
	repo.On("FindByID", mock.Anything, uint(2)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewIdentityService(repo, reverseHasher{}, nil)

	user, err := svc.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.GetUser(context.Background(), 2)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
