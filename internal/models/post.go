// Package models contains data structures for the application's domain models.
package models

import "time"

// Post represents a shared external link in the Tech News application.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	PostURL string `gorm:"not null" json:"post_url"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`

	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`

	// VoteCount is not persisted; computed at query time from the vote table
	VoteCount int `gorm:"->;-:migration" json:"vote_count"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the table to the singular lowercase name.
func (Post) TableName() string { return "post" }
