// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a post in the BirdWatch application.
//
// AuthorName is a denormalized copy of the author's display name taken at
// creation time; posts stay attributed to that name even if the user record
// changes later. LikeCount is the cached aggregate; it must always equal the
// number of Like rows referencing the post, and only the like ledger's
// transactional increment may touch it.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	AuthorName string    `gorm:"not null;index" json:"author_name"`
	LikeCount  int       `gorm:"not null;default:0" json:"like_count"`
	CreatedAt  time.Time `json:"created_at"`

	// Liked is filled in for authenticated single-post reads; anonymous
	// responses omit it.
	Liked *bool `gorm:"-" json:"liked,omitempty"`
}

// PostSort selects the ordering of a post listing.
type PostSort string

const (
	// SortRecency orders by creation time, newest first.
	SortRecency PostSort = "recency"
	// SortLikes orders by like count, ties broken newest first.
	SortLikes PostSort = "likes"
)

// ParsePostSort maps a query value onto a PostSort, defaulting to recency.
func ParsePostSort(v string) PostSort {
	if PostSort(v) == SortLikes {
		return SortLikes
	}
	return SortRecency
}
