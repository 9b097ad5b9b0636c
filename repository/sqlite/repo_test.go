package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	sqlitelib "zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/rekamjejak/backend/domain"
	infra "github.com/rekamjejak/backend/internal/infrastructure/sqlite"
	"github.com/rekamjejak/backend/repository"
)

func openTestPool(t *testing.T) *infra.Pool {
	t.Helper()

	pool, err := infra.NewPool(infra.Config{
		Path:     filepath.Join(t.TempDir(), "activity_test.db"),
		PoolSize: 2,
		Logger:   zap.NewNop(),
		OnConnect: func(conn *sqlitelib.Conn) error {
			return sqlitex.ExecuteScript(conn, Schema, nil)
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, pool.Close())
	})
	return pool
}

func TestUserCreateAndGetByCredentials(t *testing.T) {
	pool := openTestPool(t)
	users := NewUserRepository(pool)
	ctx := context.Background()

	err := users.Create(ctx, &domain.User{Username: "izza", PasswordHash: "abc123"})
	require.NoError(t, err)

	found, err := users.GetByCredentials(ctx, "izza", "abc123")
	require.NoError(t, err)
	require.Equal(t, "izza", found.Username)

	// Wrong hash on an existing username looks exactly like an unknown user.
	_, err = users.GetByCredentials(ctx, "izza", "wrong")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = users.GetByCredentials(ctx, "nobody", "abc123")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	pool := openTestPool(t)
	users := NewUserRepository(pool)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{Username: "izza", PasswordHash: "first"}))

	err := users.Create(ctx, &domain.User{Username: "izza", PasswordHash: "second"})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)

	// The original row must survive the failed second registration.
	found, err := users.GetByCredentials(ctx, "izza", "first")
	require.NoError(t, err)
	require.Equal(t, "first", found.PasswordHash)
}

func TestActivityCreateAssignsUniqueIDs(t *testing.T) {
	pool := openTestPool(t)
	activities := NewActivityRepository(pool)
	ctx := context.Background()

	first, err := activities.Create(ctx, &domain.Activity{
		Username:        "izza",
		Date:            "2025-06-01",
		Category:        "Coding",
		Description:     "refactor repository layer",
		DurationMinutes: 90,
	})
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := activities.Create(ctx, &domain.Activity{
		Username:        "izza",
		Date:            "2025-06-01",
		Category:        "Belajar",
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	listed, err := activities.ListByOwner(ctx, repository.ActivityFilter{Username: "izza"})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "refactor repository layer", listed[0].Description)
	require.Equal(t, 90, listed[0].DurationMinutes)
	require.Equal(t, "Coding", listed[0].Category)
}

func TestActivityListScopedByOwnerAndOrdered(t *testing.T) {
	pool := openTestPool(t)
	activities := NewActivityRepository(pool)
	ctx := context.Background()

	seed := []domain.Activity{
		{Username: "izza", Date: "2025-06-03", Category: "Coding", DurationMinutes: 10},
		{Username: "izza", Date: "2025-06-01", Category: "Belajar", DurationMinutes: 20},
		{Username: "lain", Date: "2025-06-02", Category: "Hiburan", DurationMinutes: 30},
		{Username: "izza", Date: "2025-06-01", Category: "Coding", DurationMinutes: 40},
	}
	for i := range seed {
		_, err := activities.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	listed, err := activities.ListByOwner(ctx, repository.ActivityFilter{Username: "izza"})
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// Ascending tanggal, then id.
	require.Equal(t, "2025-06-01", listed[0].Date)
	require.Equal(t, "2025-06-01", listed[1].Date)
	require.Equal(t, "2025-06-03", listed[2].Date)
	require.Less(t, listed[0].ID, listed[1].ID)
	for _, a := range listed {
		require.Equal(t, "izza", a.Username)
	}
}

func TestActivityListWindowInclusive(t *testing.T) {
	pool := openTestPool(t)
	activities := NewActivityRepository(pool)
	ctx := context.Background()

	for _, date := range []string{"2025-06-01", "2025-06-02", "2025-06-05", "2025-06-09"} {
		_, err := activities.Create(ctx, &domain.Activity{
			Username: "izza", Date: date, Category: "Coding", DurationMinutes: 15,
		})
		require.NoError(t, err)
	}

	listed, err := activities.ListByOwner(ctx, repository.ActivityFilter{
		Username:  "izza",
		StartDate: "2025-06-02",
		EndDate:   "2025-06-05",
	})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "2025-06-02", listed[0].Date)
	require.Equal(t, "2025-06-05", listed[1].Date)
}

func TestActivityUpdateMutableFieldsOnly(t *testing.T) {
	pool := openTestPool(t)
	activities := NewActivityRepository(pool)
	ctx := context.Background()

	created, err := activities.Create(ctx, &domain.Activity{
		Username:        "izza",
		Date:            "2025-06-01",
		Category:        "Coding",
		Description:     "initial",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	err = activities.Update(ctx, &domain.Activity{
		ID:              created.ID,
		Category:        "Belajar",
		Description:     "revised",
		DurationMinutes: 45,
	})
	require.NoError(t, err)

	got, err := activities.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Belajar", got.Category)
	require.Equal(t, "revised", got.Description)
	require.Equal(t, 45, got.DurationMinutes)
	// Owner and date are immutable post-creation.
	require.Equal(t, "izza", got.Username)
	require.Equal(t, "2025-06-01", got.Date)
}

func TestActivityUpdateAndDeleteMissingID(t *testing.T) {
	pool := openTestPool(t)
	activities := NewActivityRepository(pool)
	ctx := context.Background()

	err := activities.Update(ctx, &domain.Activity{ID: 9999, Category: "Coding", DurationMinutes: 10})
	require.ErrorIs(t, err, domain.ErrActivityNotFound)

	err = activities.Delete(ctx, 9999)
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestActivityDelete(t *testing.T) {
	pool := openTestPool(t)
	activities := NewActivityRepository(pool)
	ctx := context.Background()

	created, err := activities.Create(ctx, &domain.Activity{
		Username: "izza", Date: "2025-06-01", Category: "Coding", DurationMinutes: 30,
	})
	require.NoError(t, err)

	require.NoError(t, activities.Delete(ctx, created.ID))

	listed, err := activities.ListByOwner(ctx, repository.ActivityFilter{Username: "izza"})
	require.NoError(t, err)
	require.Empty(t, listed)

	_, err = activities.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}
