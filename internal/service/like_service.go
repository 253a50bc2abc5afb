package service

import (
	"context"
	"log/slog"

	"birdwatch/internal/middleware"
	"birdwatch/internal/models"
	"birdwatch/internal/observability"
	"birdwatch/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// LikeService is the like ledger: it records at most one like per (user, post)
// pair and keeps the cached counter on the post in step with the ledger.
type LikeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
	userRepo repository.UserRepository

	// allowSelfLikes decides whether an author may like their own post.
	// A declined self-like is a soft outcome, not an error.
	allowSelfLikes bool

	logger *slog.Logger
}

// NewLikeService returns a LikeService. allowSelfLikes is a policy decision
// made at wiring time (config ALLOW_SELF_LIKES).
func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	allowSelfLikes bool,
) *LikeService {
	return &LikeService{
		likeRepo:       likeRepo,
		postRepo:       postRepo,
		userRepo:       userRepo,
		allowSelfLikes: allowSelfLikes,
		logger:         middleware.Logger,
	}
}

// Like records a like attempt by userID on postID. The duplicate pair and the
// declined self-like both come back as {Applied: false} with no error; every
// attempt is still logged. The underlying insert-and-increment is atomic, so
// concurrent likes from distinct users never lose an update.
func (s *LikeService) Like(ctx context.Context, userID, postID uint) (models.LikeResult, error) {
	span, ctx := observability.NewSpan(ctx, "like.record")
	defer span.End()
	span.AddAttributes(
		attribute.Int("user_id", int(userID)),
		attribute.Int("post_id", int(postID)),
	)

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		span.SetError(err)
		return models.LikeResult{}, err
	}
	if post == nil {
		err := models.NewNotFoundError("Post", postID)
		span.SetError(err)
		return models.LikeResult{}, err
	}

	if !s.allowSelfLikes {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			span.SetError(err)
			return models.LikeResult{}, err
		}
		if user.Name() == post.AuthorName {
			s.logger.InfoContext(ctx, "like attempt declined by self-like policy",
				slog.Uint64("user_id", uint64(userID)),
				slog.Uint64("post_id", uint64(postID)),
			)
			middleware.LikeAttempts.WithLabelValues("self").Inc()
			return models.LikeResult{Applied: false}, nil
		}
	}

	applied, err := s.likeRepo.Create(ctx, userID, postID)
	if err != nil {
		span.SetError(err)
		return models.LikeResult{}, err
	}

	outcome := "duplicate"
	if applied {
		outcome = "applied"
	}
	middleware.LikeAttempts.WithLabelValues(outcome).Inc()
	s.logger.InfoContext(ctx, "like attempt",
		slog.Uint64("user_id", uint64(userID)),
		slog.Uint64("post_id", uint64(postID)),
		slog.String("outcome", outcome),
	)

	return models.LikeResult{Applied: applied}, nil
}

// HasLiked reports whether the user already has a ledger row for the post.
func (s *LikeService) HasLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.likeRepo.Exists(ctx, userID, postID)
}

// ListLikedPosts returns the posts a user liked, most recently liked first.
func (s *LikeService) ListLikedPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.likeRepo.PostsLikedBy(ctx, userID)
}
