package server

import (
	"birdwatch/internal/avatar"
	"birdwatch/internal/cache"
	"birdwatch/internal/middleware"
	"birdwatch/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAvatar serves the avatar image for a display name. Users who uploaded an
// avatar elsewhere get a redirect to it; everyone else gets a deterministic
// letter PNG. Identical names always yield identical bytes, so the rendered
// image is cached aggressively.
func (s *Server) GetAvatar(c *fiber.Ctx) error {
	name := c.Params("name")

	ctx := c.Context()
	user, err := s.userService.FindByName(ctx, name)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user != nil && user.AvatarURL != "" {
		return c.Redirect(user.AvatarURL, fiber.StatusFound)
	}

	letter, err := avatar.LetterFor(name)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	key := cache.AvatarKey(letter, avatar.DefaultSize, avatar.DefaultSize)
	if png, ok := cache.GetBytes(ctx, key); ok {
		middleware.AvatarRenders.WithLabelValues("cache").Inc()
		c.Set(fiber.HeaderContentType, "image/png")
		c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
		return c.Status(fiber.StatusOK).Send(png)
	}

	png, err := avatar.Generate(letter, avatar.DefaultSize, avatar.DefaultSize)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	cache.SetBytes(ctx, key, png, cache.AvatarTTL)
	middleware.AvatarRenders.WithLabelValues("generated").Inc()

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Status(fiber.StatusOK).Send(png)
}
