package service

import (
	"context"
	"strings"

	"birdwatch/internal/models"
	"birdwatch/internal/repository"
)

// PostService is the post store: CRUD over posts with ownership-gated deletion.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the fields for a new post. AuthorName is the
// creator's display name, copied onto the post verbatim.
type CreatePostInput struct {
	AuthorName string
	Title      string
	Body       string
}

// NewPostService returns a PostService backed by the given repository.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

const (
	maxTitleLen = 300
	maxBodyLen  = 50000
)

// CreatePost validates and stores a new post with a zero like count.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)

	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if body == "" {
		return nil, models.NewValidationError("Body is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(body) > maxBodyLen {
		return nil, models.NewValidationError("Body too long (max 50000 characters)")
	}
	if in.AuthorName == "" {
		return nil, models.NewValidationError("Author name is required")
	}

	post := &models.Post{
		Title:      title,
		Body:       body,
		AuthorName: in.AuthorName,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost fetches a post by ID; (nil, nil) when absent.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns all posts in the requested order.
func (s *PostService) ListPosts(ctx context.Context, sort models.PostSort) ([]*models.Post, error) {
	return s.postRepo.List(ctx, sort)
}

// ListByAuthor returns a user's posts, most recent first.
func (s *PostService) ListByAuthor(ctx context.Context, authorName string) ([]*models.Post, error) {
	return s.postRepo.GetByAuthor(ctx, authorName)
}

// DeletePost removes a post when requestingUserName owns it. A non-owner
// request is a silent no-op returning false, matching the delete contract:
// the caller learns whether deletion occurred, never why not.
func (s *PostService) DeletePost(ctx context.Context, id uint, requestingUserName string) (bool, error) {
	if requestingUserName == "" {
		return false, nil
	}
	return s.postRepo.DeleteOwned(ctx, id, requestingUserName)
}
