package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const doctorIDKey contextKey = "doctor_id"

// Middleware authenticates requests with a Bearer doctor token and stores the
// doctor ID in the request context.
func Middleware(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			claims, err := issuer.Parse(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			doctorID, err := uuid.Parse(claims.DoctorID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}

			ctx := context.WithValue(c.Request().Context(), doctorIDKey, doctorID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("doctor_id", doctorID)
			return next(c)
		}
	}
}

// DoctorIDFromContext returns the authenticated doctor's ID, or uuid.Nil when
// the request is unauthenticated.
func DoctorIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(doctorIDKey).(uuid.UUID)
	return id
}
