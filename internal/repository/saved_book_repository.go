package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"readscape/internal/model"
)

// SavedBookRepository defines persistence operations for user libraries.
type SavedBookRepository interface {
	// Create inserts the entry. The (user_id, book_id) unique index rejects
	// duplicates at insert time.
	Create(ctx context.Context, entry *model.SavedBook) error
	// Delete removes the entry for the pair and reports how many rows went away.
	Delete(ctx context.Context, userID, bookID uint) (int64, error)
	// ListBooks returns the user's saved books, most recently saved first.
	ListBooks(ctx context.Context, userID uint, category *string) ([]model.Book, error)
}

type savedBookRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewSavedBookRepository creates a new saved book repository.
func NewSavedBookRepository(db *gorm.DB, timeout time.Duration) SavedBookRepository {
	return &savedBookRepository{db: db, timeout: timeout}
}

func (r *savedBookRepository) Create(ctx context.Context, entry *model.SavedBook) error {
	db, cancel := scoped(ctx, r.db, r.timeout)
	defer cancel()
	return db.Omit(clause.Associations).Create(entry).Error
}

func (r *savedBookRepository) Delete(ctx context.Context, userID, bookID uint) (int64, error) {
	db, cancel := scoped(ctx, r.db, r.timeout)
	defer cancel()
	res := db.Where("user_id = ? AND book_id = ?", userID, bookID).Delete(&model.SavedBook{})
	return res.RowsAffected, res.Error
}

func (r *savedBookRepository) ListBooks(ctx context.Context, userID uint, category *string) ([]model.Book, error) {
	db, cancel := scoped(ctx, r.db, r.timeout)
	defer cancel()
	query := db.Model(&model.Book{}).
		Select("books.*").
		Joins("INNER JOIN saved_books ON saved_books.book_id = books.id").
		Where("saved_books.user_id = ?", userID)
	if category != nil {
		query = query.Where("books.category = ?", *category)
	}
	books := make([]model.Book, 0)
	if err := query.
		Order("saved_books.timestamp DESC").
		Order("saved_books.id DESC").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}
