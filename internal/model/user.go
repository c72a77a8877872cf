package model

import "time"

// User is a reader account. Username is immutable after registration.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:255;not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Bio       *string   `json:"bio" gorm:"type:text"`
	Instagram *string   `json:"instagram" gorm:"size:255"`
	Facebook  *string   `json:"facebook" gorm:"size:255"`
	TikTok    *string   `json:"tiktok" gorm:"column:tiktok;size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile holds the mutable profile fields. A nil field clears the stored value.
type Profile struct {
	Bio       *string
	Instagram *string
	Facebook  *string
	TikTok    *string
}
