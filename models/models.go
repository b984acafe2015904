package models

import "time"

// User is a registered account. A user owns zero or more notes; ownership is
// never reassigned.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Notes        []Note
}

func (User) TableName() string { return "users" }

// Note stores the body as raw Markdown; it is converted to HTML at render
// time and never persisted in rendered form.
type Note struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	Body      string
	UserID    uint `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Note) TableName() string { return "notes" }
