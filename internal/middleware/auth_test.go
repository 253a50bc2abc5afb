package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"birdwatch/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, userID uint, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"exp": now.Add(expiresIn).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authTestApp(t *testing.T, handler fiber.Handler) *fiber.App {
	t.Helper()
	InitMiddleware(&config.Config{JWTSecret: "test-secret"})

	app := fiber.New()
	app.Get("/protected", handler, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(uint)
		return c.JSON(fiber.Map{"user_id": userID})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	app := authTestApp(t, AuthRequired)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"Valid token", "Bearer " + signToken(t, "test-secret", 7, time.Hour), http.StatusOK},
		{"Missing header", "", http.StatusUnauthorized},
		{"Malformed header", "NotBearer xyz", http.StatusUnauthorized},
		{"Garbage token", "Bearer garbage", http.StatusUnauthorized},
		{"Wrong secret", "Bearer " + signToken(t, "other-secret", 7, time.Hour), http.StatusUnauthorized},
		{"Expired token", "Bearer " + signToken(t, "test-secret", 7, -time.Hour), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestAuthRequiredRejectsWrongSigningMethod(t *testing.T) {
	app := authTestApp(t, AuthRequired)

	// alg=none tokens must never pass.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "7"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalAuth(t *testing.T) {
	app := authTestApp(t, OptionalAuth)

	// Anonymous request passes with no user.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Invalid token also passes, still anonymous.
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
