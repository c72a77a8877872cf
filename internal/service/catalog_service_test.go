package service

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "readscape/internal/errors"
	"readscape/internal/model"
	"readscape/internal/storage"
)

func newTestContent(t *testing.T, files map[string]string) *storage.ContentStore {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/books", 0o755))
	require.NoError(t, fsys.MkdirAll("/covers", 0o755))
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(body), 0o644))
	}
	return storage.NewContentStore(fsys, "/books", "/covers")
}

func TestCatalogService_ListBooks(t *testing.T) {
	fiction := strPtr("fiction")
	books := []model.Book{{ID: 2, Title: "A"}, {ID: 1, Title: "B"}}

	repo := new(MockBookRepository)
	repo.On("List", mock.Anything, (*string)(nil)).Return(books, nil)
	repo.On("List", mock.Anything, fiction).Return([]model.Book{}, nil)

	svc := NewCatalogService(repo, newTestContent(t, nil), nil)

	got, err := svc.ListBooks(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, books, got)

	got, err = svc.ListBooks(context.Background(), fiction)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCatalogService_GetBookContent(t *testing.T) {
	content := newTestContent(t, map[string]string{"/books/moby.txt": "Call me Ishmael."})

	tests := []struct {
		name      string
		bookID    uint
		setupMock func(*MockBookRepository)
		want      string
		wantErr   error
	}{
		{
			name:   "file present",
			bookID: 5,
			setupMock: func(m *MockBookRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(&model.Book{ID: 5, FileName: "moby.txt"}, nil)
			},
			want: "Call me Ishmael.",
		},
		{
			name:   "unknown book",
			bookID: 999,
			setupMock: func(m *MockBookRepository) {
				m.On("FindByID", mock.Anything, uint(999)).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: apperrors.ErrBookNotFound,
		},
		{
			name:   "file missing",
			bookID: 6,
			setupMock: func(m *MockBookRepository) {
				m.On("FindByID", mock.Anything, uint(6)).Return(&model.Book{ID: 6, FileName: "gone.txt"}, nil)
			},
			wantErr: apperrors.ErrBookFileNotFound,
		},
		{
			name:   "file name escapes storage",
			bookID: 7,
			setupMock: func(m *MockBookRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(&model.Book{ID: 7, FileName: "../covers/x.txt"}, nil)
			},
			wantErr: apperrors.ErrBookFileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockBookRepository)
			tt.setupMock(repo)

			svc := NewCatalogService(repo, content, nil)
			got, err := svc.GetBookContent(context.Background(), tt.bookID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestCatalogService_GetCover(t *testing.T) {
	content := newTestContent(t, map[string]string{"/covers/moby.png": "\x89PNG\r\n\x1a\n"})
	svc := NewCatalogService(new(MockBookRepository), content, nil)

	cover, err := svc.GetCover(context.Background(), "moby.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", cover.ContentType)

	_, err = svc.GetCover(context.Background(), "missing.png")
	assert.ErrorIs(t, err, apperrors.ErrCoverNotFound)

	_, err = svc.GetCover(context.Background(), "../books/moby.txt")
	assert.ErrorIs(t, err, apperrors.ErrCoverNotFound)
}
