package repository

import (
	"context"
	"time"

	"birdwatch/internal/cache"
	"birdwatch/internal/models"

	"gorm.io/gorm"
)

// LikeRepository owns the append-only like ledger and the derived counter on
// posts. It is the only writer of posts.like_count.
type LikeRepository interface {
	Create(ctx context.Context, userID, postID uint) (applied bool, err error)
	Exists(ctx context.Context, userID, postID uint) (bool, error)
	PostsLikedBy(ctx context.Context, userID uint) ([]*models.Post, error)
	CountForPost(ctx context.Context, postID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create records a like for (userID, postID). The insert and the counter
// increment run in one transaction: ON CONFLICT DO NOTHING absorbs the
// duplicate-pair race, and the increment only happens when the insert landed.
// Two concurrent likes from distinct users therefore both count, and a failed
// attempt leaves neither the ledger row nor the incremented counter behind.
func (r *likeRepository) Create(ctx context.Context, userID, postID uint) (bool, error) {
	var applied bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			`INSERT INTO likes (user_id, post_id, created_at)
			 VALUES (?, ?, ?)
			 ON CONFLICT (user_id, post_id) DO NOTHING`,
			userID, postID, time.Now().UTC(),
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already liked; nothing to count.
			return nil
		}

		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}

	if applied {
		cache.InvalidatePost(ctx, postID)
	}
	return applied, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// PostsLikedBy returns the posts a user liked, most recently liked first.
// The order follows the ledger rows, not the posts' own timestamps.
func (r *likeRepository) PostsLikedBy(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.*").
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC, likes.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *likeRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
