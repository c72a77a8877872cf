package service

import (
	"context"
	"fmt"
	"time"

	"readscape/internal/db"
	apperrors "readscape/internal/errors"
	"readscape/internal/model"
	"readscape/internal/repository"
)

// LibraryService manages each user's saved books.
type LibraryService interface {
	SaveBook(ctx context.Context, userID, bookID uint) error
	ListSaved(ctx context.Context, userID uint, category *string) ([]model.Book, error)
	UnsaveBook(ctx context.Context, userID, bookID uint) error
}

type libraryService struct {
	books repository.BookRepository
	saved repository.SavedBookRepository
	now   func() time.Time
}

// NewLibraryService creates a new library service.
func NewLibraryService(books repository.BookRepository, saved repository.SavedBookRepository) LibraryService {
	return &libraryService{
		books: books,
		saved: saved,
		now:   time.Now,
	}
}

// SaveBook adds a book to the user's library.
func (s *libraryService) SaveBook(ctx context.Context, userID, bookID uint) error {
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		if db.IsNotFound(err) {
			return apperrors.ErrBookNotFound
		}
		return fmt.Errorf("find book: %w", err)
	}

	entry := &model.SavedBook{
		UserID:  userID,
		BookID:  bookID,
		SavedAt: s.now().UTC(),
	}
	if err := s.saved.Create(ctx, entry); err != nil {
		switch {
		case db.IsDuplicateKey(err):
			return apperrors.ErrAlreadySaved
		case db.IsForeignKeyViolation(err):
			// book removed between lookup and insert
			return apperrors.ErrBookNotFound
		}
		return fmt.Errorf("save book: %w", err)
	}
	return nil
}

// ListSaved returns the user's saved books, most recently saved first.
func (s *libraryService) ListSaved(ctx context.Context, userID uint, category *string) ([]model.Book, error) {
	books, err := s.saved.ListBooks(ctx, userID, category)
	if err != nil {
		return nil, fmt.Errorf("list saved books: %w", err)
	}
	return books, nil
}

// UnsaveBook removes a book from the user's library.
func (s *libraryService) UnsaveBook(ctx context.Context, userID, bookID uint) error {
	removed, err := s.saved.Delete(ctx, userID, bookID)
	if err != nil {
		return fmt.Errorf("unsave book: %w", err)
	}
	if removed == 0 {
		return apperrors.ErrNotInLibrary
	}
	return nil
}
