package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"microloan-backend/internal/domain/role"
	"microloan-backend/internal/infrastructure/auth"
)

const (
	ctxUserID   = "user_id"
	ctxUserRole = "user_role"
)

// RequireAuth verifies the bearer token and stores the caller's id and role on the context.
func RequireAuth(jwt *auth.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(h, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			claims, err := jwt.Parse(strings.TrimSpace(raw))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			SetActor(c, claims.UserID, role.Role(claims.Role))
			return next(c)
		}
	}
}

// RequireRole rejects callers whose role is not in allowed.
func RequireRole(allowed ...role.Role) echo.MiddlewareFunc {
	allowedSet := map[role.Role]struct{}{}
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, r, ok := Actor(c)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			if _, found := allowedSet[r]; !found {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// Actor returns the authenticated caller set by RequireAuth.
func Actor(c echo.Context) (id string, r role.Role, ok bool) {
	id, _ = c.Get(ctxUserID).(string)
	r, _ = c.Get(ctxUserRole).(role.Role)
	return id, r, id != "" && r.Valid()
}

// SetActor stores the caller on the context the way RequireAuth does.
func SetActor(c echo.Context, id string, r role.Role) {
	c.Set(ctxUserID, id)
	c.Set(ctxUserRole, r)
}
