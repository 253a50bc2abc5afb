package models

import (
	"time"
)

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique; the ledger is
// append-only, so there is no unlike and no soft delete.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeResult reports the outcome of a like attempt. Applied is false when the
// user had already liked the post (or a self-like was declined by policy);
// both are soft outcomes, not errors.
type LikeResult struct {
	Applied bool `json:"applied"`
}
