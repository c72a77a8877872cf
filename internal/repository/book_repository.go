package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"readscape/internal/model"
)

// BookRepository defines catalog persistence operations.
type BookRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	FindByFileName(ctx context.Context, fileName string) (*model.Book, error)
	List(ctx context.Context, category *string) ([]model.Book, error)
	Create(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
}

type bookRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewBookRepository creates a new book repository.
func NewBookRepository(db *gorm.DB, timeout time.Duration) BookRepository {
	return &bookRepository{db: db, timeout: timeout}
}

// FindByID finds a book by ID.
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	db, cancel := scoped(ctx, r.db, r.timeout)
	defer cancel()
	var book model.Book
	if err := db.Where("id = ?", id).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByFileName finds a book by its content file name.
func (r *bookRepository) FindByFileName(ctx context.Context, fileName string) (*model.Book, error) {
	db, cancel := scoped(ctx, r.db, r.timeout)
	defer cancel()
	var book model.Book
	if err := db.Where("file_name = ?", fileName).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// List returns books ordered by title, optionally limited to one category.
func (r *bookRepository) List(ctx context.Context, category *string) ([]model.Book, error) {
	db, cancel := scoped(ctx, r.db, r.timeout)
	defer cancel()
	query := db.Model(&model.Book{})
	if category != nil {
		query = query.Where("category = ?", *category)
	}
	books := make([]model.Book, 0)
	if err := query.Order("title ASC").Order("id ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Create creates a new book.
func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	db, cancel := scoped(ctx, r.db, r.timeout)
	defer cancel()
	return db.Omit(clause.Associations).Create(book).Error
}

// Update updates an existing book.
func (r *bookRepository) Update(ctx context.Context, book *model.Book) error {
	db, cancel := scoped(ctx, r.db, r.timeout)
	defer cancel()
	return db.Save(book).Error
}
