package server

import (
	"birdwatch/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the authenticated user's profile: their record, authored
// posts, and liked posts.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	}

	profile, err := s.profileService.Assemble(c.Context(), user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}
