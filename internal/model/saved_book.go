package model

import "time"

// SavedBook records that a user saved a book to their library.
// At most one row exists per (user, book) pair.
type SavedBook struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	UserID  uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_saved_books_user_book"`
	BookID  uint      `json:"book_id" gorm:"not null;uniqueIndex:idx_saved_books_user_book"`
	SavedAt time.Time `json:"saved_at" gorm:"column:timestamp;not null;index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Book Book `json:"-" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the table name used by existing deployments.
func (SavedBook) TableName() string {
	return "saved_books"
}
