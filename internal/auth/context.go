package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/model"
)

// contextKey is the echo context key the auth context is stored under.
const contextKey = "auth_context"

// Context is the verified identity of the requester, built once per request
// from the JWT and passed to handlers. It replaces any notion of server-side
// mutable session state.
type Context struct {
	UserID uint
	Email  string
	Role   string
}

// IsAdmin reports whether the requester holds the admin role.
func (a *Context) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// FromEcho returns the auth context placed on the request by the middleware.
func FromEcho(c echo.Context) (*Context, error) {
	ac, ok := c.Get(contextKey).(*Context)
	if !ok || ac == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return ac, nil
}

// Middleware converts validated JWT claims into a Context. It must run after
// the echo-jwt middleware that parses and verifies the token.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			c.Set(contextKey, &Context{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
			})
			return next(c)
		}
	}
}

// RequireRole rejects requests whose auth context does not carry the role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ac, err := FromEcho(c)
			if err != nil {
				return err
			}
			if ac.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
