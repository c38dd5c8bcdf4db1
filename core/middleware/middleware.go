package middleware

import (
	"campusflow/core/cache"
	"campusflow/core/constants"
	"campusflow/core/controller"
	"campusflow/core/errors"
	"campusflow/core/logger"
	"campusflow/core/utils"
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

// RoleResolver answers role checks from the user store.
type RoleResolver interface {
	HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error)
}

type Middleware struct {
	cache cache.Cache
	roles RoleResolver
}

func NewMiddleware(c cache.Cache) *Middleware {
	return &Middleware{cache: c}
}

// SetRoleResolver is called once the user module is wired.
func (m *Middleware) SetRoleResolver(r RoleResolver) {
	m.roles = r
}

// Authenticate validates an access token and returns its claims.
func (m *Middleware) Authenticate(ctx context.Context, token string) (*utils.TokenClaims, *errors.AppError) {
	if token == "" {
		return nil, errors.NewAppError(errors.ErrMissingAuthorizationHeader, "Missing authorization token", nil)
	}
	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		if err == utils.ErrTokenExpired {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "Token expired", nil)
		}
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "Invalid token", nil)
	}
	if claims.Scope != constants.ScopeTokenAccess {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Token scope not allowed", nil)
	}
	if m.cache != nil {
		blacklisted, cacheErr := m.cache.IsTokenBlacklisted(ctx, claims.ID)
		if cacheErr != nil {
			logger.Error("Middleware:Authenticate:Blacklist", cacheErr)
		}
		if blacklisted {
			return nil, errors.NewAppError(errors.ErrUnauthorized, "Token has been revoked", nil)
		}
	}
	return claims, nil
}

func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, appErr := m.Authenticate(c.Request().Context(), utils.GetTokenFromHeader(c))
			if appErr != nil {
				return controller.NewErrorResponse(http.StatusUnauthorized, appErr.Code, appErr.Message)
			}
			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequireRole must run after AuthMiddleware.
func (m *Middleware) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := controller.CurrentUserID(c)
			if !ok {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Unauthorized")
			}
			if m.roles == nil {
				return controller.NewErrorResponse(http.StatusForbidden, errors.ErrForbidden, "Forbidden")
			}
			allowed, err := m.roles.HasRole(c.Request().Context(), userID, role)
			if err != nil {
				logger.Error("Middleware:RequireRole", "role", role, "error", err)
				return controller.NewErrorResponse(http.StatusInternalServerError, errors.ErrInternalServer, "Failed to check role")
			}
			if !allowed {
				return controller.NewErrorResponse(http.StatusForbidden, errors.ErrForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

func (m *Middleware) RequireAdmin() echo.MiddlewareFunc {
	return m.RequireRole(RoleAdmin)
}
