// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a member of the BirdWatch application.
//
// ExternalID is the opaque identifier handed to us by the identity provider;
// it is set exactly once, at first sign-in. DisplayName stays NULL until the
// user completes registration, which is why it is a pointer: the column has a
// unique index and several pending users must be able to coexist without one.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ExternalID  string    `gorm:"uniqueIndex;not null" json:"-"`
	DisplayName *string   `gorm:"uniqueIndex" json:"display_name,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"member_since"`
}

// Named reports whether the user has completed registration.
func (u *User) Named() bool {
	return u.DisplayName != nil && *u.DisplayName != ""
}

// Name returns the display name, or the empty string for a pending user.
func (u *User) Name() string {
	if u.DisplayName == nil {
		return ""
	}
	return *u.DisplayName
}
