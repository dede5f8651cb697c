// Package auth issues and validates the JWTs that protect the console API.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// GenerateToken signs an HS256 JWT for the given admin id.
func GenerateToken(adminID int64, secret string, expiresIn time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiresIn)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(adminID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// JWTMiddleware returns the echo middleware enforcing bearer tokens, with
// skipper deciding which routes stay public.
func JWTMiddleware(secret string, skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		Skipper:    skipper,
		SigningKey: []byte(secret),
	})
}

// AdminIDFromContext extracts the authenticated admin id from the request.
func AdminIDFromContext(c echo.Context) (int64, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok || token == nil {
		return 0, echo.NewHTTPError(401, "missing or invalid token")
	}
	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return 0, echo.NewHTTPError(401, "token subject missing")
	}
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(401, "token subject malformed")
	}
	return id, nil
}
