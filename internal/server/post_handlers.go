package server

import (
	"log/slog"

	"birdwatch/internal/middleware"
	"birdwatch/internal/models"
	"birdwatch/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreatePost creates a post authored by the authenticated user. Pending users
// (no display name yet) cannot post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	}
	if !user.Named() {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Complete registration before posting"))
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ctx := c.Context()
	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		AuthorName: user.Name(),
		Title:      req.Title,
		Body:       req.Body,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.Logger.InfoContext(ctx, "post created",
		slog.Uint64("post_id", uint64(post.ID)),
		slog.String("author", post.AuthorName))

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts lists all posts. ?sort=likes orders by like count (ties broken by
// recency); the default is newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	sort := models.ParsePostSort(c.Query("sort"))

	posts, err := s.postService.ListPosts(c.Context(), sort)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"posts": posts,
		"count": len(posts),
	})
}

// GetPost returns a single post by ID. Authenticated readers additionally get
// a liked flag saying whether they already liked it.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	ctx := c.Context()
	post, err := s.postService.GetPost(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if post == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", id))
	}

	if userID := currentUserID(c); userID != 0 {
		liked, err := s.likeService.HasLiked(ctx, userID, id)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		post.Liked = &liked
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

// DeletePost removes a post owned by the authenticated user. Deleting a post
// that does not exist, or that belongs to someone else, reports deleted:false
// rather than an error.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	}

	ctx := c.Context()
	deleted, err := s.postService.DeletePost(ctx, id, user.Name())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if deleted {
		middleware.Logger.InfoContext(ctx, "post deleted",
			slog.Uint64("post_id", uint64(id)),
			slog.String("author", user.Name()))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"deleted": deleted})
}

// LikePost records a like by the authenticated user. Repeats and declined
// self-likes return applied:false with the unchanged post.
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	ctx := c.Context()
	result, err := s.likeService.Like(ctx, currentUserID(c), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	post, err := s.postService.GetPost(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"applied": result.Applied,
		"post":    post,
	})
}
