package models

// Vote records a single upvote event on a post. There is deliberately no
// uniqueness over (user_id, post_id): a post's vote_count is the number of
// vote events, not the number of distinct voters.
type Vote struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	PostID uint `gorm:"not null;index" json:"post_id"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Post *Post `gorm:"foreignKey:PostID" json:"-"`
}

// TableName pins the table to the singular lowercase name.
func (Vote) TableName() string { return "vote" }
