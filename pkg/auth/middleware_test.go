package auth

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/minbarapp/minbar/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	user := createTestUser(t, db, "muadh", "some-password", false)

	svc := NewService(db, "test-secret")
	m := NewMiddleware(svc)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("rejects requests without a cookie", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContext(t, "", http.MethodGet, "/audio/uploads")

		err := m.Authenticate(next)(c)
		require.Error(t, err)
		assert.ErrorIs(t, err, errcodes.Unauthorized("Authentication required"))
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContext(t, "", http.MethodGet, "/audio/uploads")
		c.Request().AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-jwt"})

		err := m.Authenticate(next)(c)
		require.Error(t, err)
		assert.ErrorIs(t, err, errcodes.Unauthorized("Invalid or expired token"))
	})

	t.Run("accepts a valid token and populates the context", func(t *testing.T) {
		t.Parallel()
		token, err := svc.GenerateToken(user)
		require.NoError(t, err)

		c, rec := newTestContext(t, "", http.MethodGet, "/audio/uploads")
		c.Request().AddCookie(&http.Cookie{Name: CookieName, Value: token})

		err = m.Authenticate(next)(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, user.ID, c.Get("user_id"))
		assert.Equal(t, "muadh", c.Get("username"))
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		t.Parallel()
		otherSvc := NewService(db, "other-secret")
		token, err := otherSvc.GenerateToken(user)
		require.NoError(t, err)

		c, _ := newTestContext(t, "", http.MethodGet, "/audio/uploads")
		c.Request().AddCookie(&http.Cookie{Name: CookieName, Value: token})

		err = m.Authenticate(next)(c)
		require.Error(t, err)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", "some-password", true)
	member := createTestUser(t, db, "member", "some-password", false)

	svc := NewService(db, "test-secret")
	m := NewMiddleware(svc)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("rejects when no user is in the context", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContext(t, "", http.MethodPost, "/audio/upload")

		err := m.RequireAdmin(next)(c)
		require.Error(t, err)
		assert.ErrorIs(t, err, errcodes.Unauthorized("Authentication required"))
	})

	t.Run("rejects non-admin users", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContext(t, "", http.MethodPost, "/audio/upload")
		c.Set("user", member)

		err := m.RequireAdmin(next)(c)
		require.Error(t, err)
		assert.ErrorIs(t, err, errcodes.Forbidden("Administration"))
	})

	t.Run("allows admins", func(t *testing.T) {
		t.Parallel()
		c, rec := newTestContext(t, "", http.MethodPost, "/audio/upload")
		c.Set("user", admin)

		err := m.RequireAdmin(next)(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
