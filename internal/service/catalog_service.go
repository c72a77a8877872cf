package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"readscape/internal/cache"
	"readscape/internal/db"
	apperrors "readscape/internal/errors"
	"readscape/internal/model"
	"readscape/internal/repository"
	"readscape/internal/storage"
)

const catalogCacheTTL = time.Minute

// Cover is a cover image ready to be written to the client.
type Cover struct {
	Data        []byte
	ContentType string
}

// CatalogService handles book listing and content retrieval.
type CatalogService interface {
	ListBooks(ctx context.Context, category *string) ([]model.Book, error)
	GetBookContent(ctx context.Context, bookID uint) (string, error)
	GetCover(ctx context.Context, fileName string) (*Cover, error)
}

type catalogService struct {
	books   repository.BookRepository
	content *storage.ContentStore
	cache   *cache.Client
}

// NewCatalogService creates a new catalog service. cache may be nil.
func NewCatalogService(books repository.BookRepository, content *storage.ContentStore, cache *cache.Client) CatalogService {
	return &catalogService{
		books:   books,
		content: content,
		cache:   cache,
	}
}

// catalogCacheKey is shared with the importer, which drops stale listings.
func catalogCacheKey(category *string) string {
	if category == nil {
		return "books:all"
	}
	return "books:category:" + *category
}

// ListBooks returns books by title, optionally filtered by exact category.
func (s *catalogService) ListBooks(ctx context.Context, category *string) ([]model.Book, error) {
	key := catalogCacheKey(category)
	var cached []model.Book
	if s.cache.GetJSON(ctx, key, &cached) && cached != nil {
		return cached, nil
	}

	books, err := s.books.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	s.cache.SetJSON(ctx, key, books, catalogCacheTTL)
	return books, nil
}

// GetBookContent returns the full text of a book.
func (s *catalogService) GetBookContent(ctx context.Context, bookID uint) (string, error) {
	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		if db.IsNotFound(err) {
			return "", apperrors.ErrBookNotFound
		}
		return "", fmt.Errorf("find book: %w", err)
	}

	data, err := s.content.ReadBook(book.FileName)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return "", apperrors.ErrBookFileNotFound
		}
		return "", fmt.Errorf("read book %d: %w", bookID, err)
	}
	return string(data), nil
}

// GetCover returns a cover image from the covers directory.
func (s *catalogService) GetCover(_ context.Context, fileName string) (*Cover, error) {
	data, contentType, err := s.content.ReadCover(fileName)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, apperrors.ErrCoverNotFound
		}
		return nil, fmt.Errorf("read cover: %w", err)
	}
	return &Cover{Data: data, ContentType: contentType}, nil
}
