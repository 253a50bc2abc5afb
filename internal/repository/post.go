package repository

import (
	"context"
	"errors"

	"birdwatch/internal/cache"
	"birdwatch/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, sort models.PostSort) ([]*models.Post, error)
	GetByAuthor(ctx context.Context, authorName string) ([]*models.Post, error)
	DeleteOwned(ctx context.Context, id uint, authorName string) (bool, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).First(&post, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// applySort appends the ORDER BY clause for the requested sort. The trailing
// "id DESC" is the deterministic secondary key making both orderings total:
// equal-rank rows come back in the same order on every run.
func (r *postRepository) applySort(db *gorm.DB, sort models.PostSort) *gorm.DB {
	switch sort {
	case models.SortLikes:
		return db.Order("like_count DESC, created_at DESC, id DESC")
	default:
		return db.Order("created_at DESC, id DESC")
	}
}

func (r *postRepository) List(ctx context.Context, sort models.PostSort) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applySort(r.db.WithContext(ctx), sort).Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByAuthor(ctx context.Context, authorName string) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("author_name = ?", authorName).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// DeleteOwned removes a post only when authorName matches; the ownership check
// and the delete are a single statement, so there is no window for the author
// to change between them. A mismatch or a missing post is not an error: the
// boolean tells the caller whether anything was deleted.
func (r *postRepository) DeleteOwned(ctx context.Context, id uint, authorName string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND author_name = ?", id, authorName).
		Delete(&models.Post{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	cache.InvalidatePost(ctx, id)
	return true, nil
}
