package server

import (
	"log/slog"
	"strings"

	"birdwatch/internal/middleware"
	"birdwatch/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CallbackRequest carries the identity asserted by the external provider.
type CallbackRequest struct {
	ExternalID string `json:"external_id"`
}

// RegisterRequest carries the display name chosen at registration.
type RegisterRequest struct {
	DisplayName string `json:"display_name"`
}

// LoginRequest identifies a returning user by display name.
type LoginRequest struct {
	DisplayName string `json:"display_name"`
}

// AuthResponse is returned by all authentication endpoints.
type AuthResponse struct {
	Token      string       `json:"token"`
	User       *models.User `json:"user"`
	Registered bool         `json:"registered"`
}

// AuthCallback handles the identity provider callback. A first-time identity
// gets a pending user row with no display name; the client is expected to
// follow up with /api/auth/register. A known identity gets a token directly.
func (s *Server) AuthCallback(c *fiber.Ctx) error {
	var req CallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.ExternalID = strings.TrimSpace(req.ExternalID)
	if req.ExternalID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("external_id is required"))
	}

	ctx := c.Context()
	user, err := s.userService.FindByExternalID(ctx, req.ExternalID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if user == nil {
		user, err = s.userService.CreatePending(ctx, req.ExternalID)
		if err != nil {
			// Lost a race with a concurrent callback for the same identity;
			// the row exists now, use it.
			if models.HasCode(err, models.CodeDuplicateExternalID) {
				user, err = s.userService.FindByExternalID(ctx, req.ExternalID)
				if err != nil || user == nil {
					return models.RespondWithError(c, fiber.StatusInternalServerError,
						models.NewInternalError(err))
				}
			} else {
				return models.RespondWithError(c, fiber.StatusInternalServerError, err)
			}
		}
		middleware.Logger.InfoContext(ctx, "pending user created",
			slog.Uint64("user_id", uint64(user.ID)))
	}

	token, err := s.generateToken(user.ID, user.Name())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		Token:      token,
		User:       user,
		Registered: user.Named(),
	})
}

// Register completes registration for the authenticated pending user by
// claiming a display name. Exactly-once: a second call fails with
// ALREADY_NAMED even for the same name.
func (s *Server) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ctx := c.Context()
	user, err := s.userService.CompleteRegistration(ctx, currentUserID(c), req.DisplayName)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.Logger.InfoContext(ctx, "registration completed",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("display_name", user.Name()))

	// Fresh token so the cached name claim is current.
	token, err := s.generateToken(user.ID, user.Name())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		Token:      token,
		User:       user,
		Registered: true,
	})
}

// Login issues a token for a registered user looked up by display name.
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.DisplayName == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("display_name is required"))
	}

	ctx := c.Context()
	user, err := s.userService.FindByName(ctx, req.DisplayName)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		// Same response shape regardless of whether the name exists.
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID, user.Name())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		Token:      token,
		User:       user,
		Registered: user.Named(),
	})
}

// GetMe returns the authenticated user's own record.
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": user})
}
