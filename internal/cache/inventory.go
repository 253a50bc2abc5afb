package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	PostKeyPrefix   = "post:%d"
	AvatarKeyPrefix = "avatar:%c:%dx%d"
)

const (
	UserTTL   = 5 * time.Minute
	PostTTL   = 30 * time.Minute
	AvatarTTL = 24 * time.Hour
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// AvatarKey identifies a rendered avatar by letter and dimensions. Generation
// is deterministic, so the cached bytes never go stale.
func AvatarKey(letter rune, width, height int) string {
	return fmt.Sprintf(AvatarKeyPrefix, letter, width, height)
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
