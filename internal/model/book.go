package model

import "time"

// Book is a catalog entry. FileName points at the text content in book storage.
type Book struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"size:255;not null;index"`
	Author     *string   `json:"author" gorm:"size:255"`
	Category   *string   `json:"category" gorm:"size:100;index"`
	FileName   string    `json:"file_name" gorm:"size:255;not null;uniqueIndex"`
	CoverImage *string   `json:"cover_image" gorm:"size:255"`
	CreatedAt  time.Time `json:"created_at"`
}
