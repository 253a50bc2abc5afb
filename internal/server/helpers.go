package server

import (
	"strconv"

	"birdwatch/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID parses a numeric path parameter into a uint.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + param + " parameter")
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user's ID from request locals.
// Only valid behind AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// currentUser loads the authenticated user. Returns an unauthorized error when
// the token subject no longer resolves to a row.
func (s *Server) currentUser(c *fiber.Ctx) (*models.User, error) {
	userID := currentUserID(c)
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	user, err := s.userService.GetByID(c.Context(), userID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewUnauthorizedError("Unknown user")
		}
		return nil, err
	}
	return user, nil
}
