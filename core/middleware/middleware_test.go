package middleware

import (
	"campusflow/core/cache"
	"campusflow/core/config"
	"campusflow/core/constants"
	"campusflow/core/controller"
	"campusflow/core/utils"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type stubRoles map[uuid.UUID]string

func (s stubRoles) HasRole(_ context.Context, userID uuid.UUID, role string) (bool, error) {
	return s[userID] == role, nil
}

func setup(t *testing.T) (*echo.Echo, *Middleware, *cache.MemoryCache) {
	t.Helper()
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "mw-secret", AccessTTL: time.Hour, RefreshTTL: time.Hour}})
	c := cache.NewMemoryCache()
	mw := NewMiddleware(c)
	e := echo.New()
	return e, mw, c
}

func serve(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private/ping", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	e, mw, c := setup(t)
	userID := uuid.New()
	e.GET("/private/ping", func(ctx echo.Context) error {
		id, ok := controller.CurrentUserID(ctx)
		if !ok || id != userID {
			return ctx.NoContent(http.StatusTeapot)
		}
		return ctx.NoContent(http.StatusOK)
	}, mw.AuthMiddleware())

	access, _, _ := utils.GenerateToken(userID, "a@b.co", constants.ScopeTokenAccess)
	refresh, _, _ := utils.GenerateToken(userID, "a@b.co", constants.ScopeTokenRefresh)

	if rec := serve(e, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: %d", rec.Code)
	}
	if rec := serve(e, "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: %d", rec.Code)
	}
	if rec := serve(e, refresh); rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token must not authenticate: %d", rec.Code)
	}
	if rec := serve(e, access); rec.Code != http.StatusOK {
		t.Fatalf("valid token: %d", rec.Code)
	}

	claims, _ := utils.ValidateAndParseToken(access)
	_ = c.AddToTokenBlacklist(context.Background(), claims.ID, time.Hour)
	if rec := serve(e, access); rec.Code != http.StatusUnauthorized {
		t.Fatalf("blacklisted token: %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	e, mw, _ := setup(t)
	admin, student := uuid.New(), uuid.New()
	mw.SetRoleResolver(stubRoles{admin: RoleAdmin})
	e.GET("/private/ping", func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusOK)
	}, mw.AuthMiddleware(), mw.RequireAdmin())

	adminToken, _, _ := utils.GenerateToken(admin, "admin@uni.edu", constants.ScopeTokenAccess)
	studentToken, _, _ := utils.GenerateToken(student, "s@uni.edu", constants.ScopeTokenAccess)

	if rec := serve(e, adminToken); rec.Code != http.StatusOK {
		t.Fatalf("admin: %d", rec.Code)
	}
	if rec := serve(e, studentToken); rec.Code != http.StatusForbidden {
		t.Fatalf("student: %d", rec.Code)
	}
}
