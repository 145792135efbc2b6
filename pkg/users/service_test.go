package users

import (
	"database/sql"
	"testing"

	"github.com/minbarapp/minbar/pkg/auth"
	"github.com/minbarapp/minbar/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			username TEXT NOT NULL UNIQUE COLLATE NOCASE,
			email TEXT COLLATE NOCASE,
			password_hash TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)
	`)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestCreateAndRetrieve(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db)
	ctx := t.Context()

	user, err := svc.Create(ctx, CreateUserOptions{
		Username: "bilal",
		Password: "some-password",
		IsAdmin:  true,
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.True(t, user.IsAdmin)
	assert.True(t, auth.CheckPassword("some-password", user.PasswordHash))

	got, err := svc.Retrieve(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bilal", got.Username)
}

func TestRetrieveNotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.Retrieve(t.Context(), 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.NotFound("User"))
}

func TestList(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db)
	ctx := t.Context()

	for _, username := range []string{"zayd", "aisha", "omar"} {
		_, err := svc.Create(ctx, CreateUserOptions{Username: username, Password: "some-password"})
		require.NoError(t, err)
	}

	users, total, err := svc.List(ctx, ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, users, 2)
	assert.Equal(t, "aisha", users[0].Username)
	assert.Equal(t, "omar", users[1].Username)
}

func TestDeactivate(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := NewService(db)
	ctx := t.Context()

	user, err := svc.Create(ctx, CreateUserOptions{Username: "hafsa", Password: "some-password"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, user.ID))

	got, err := svc.Retrieve(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	err = svc.Deactivate(ctx, 99)
	assert.ErrorIs(t, err, errcodes.NotFound("User"))
}
