package sqlite

import (
	"context"

	sqlitelib "zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/rekamjejak/backend/domain"
	infra "github.com/rekamjejak/backend/internal/infrastructure/sqlite"
	"github.com/rekamjejak/backend/repository"
)

type activityRepository struct {
	pool *infra.Pool
}

// NewActivityRepository returns a SQLite-backed implementation of ActivityRepository.
func NewActivityRepository(pool *infra.Pool) repository.ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	var activity *domain.Activity
	err = sqlitex.Execute(conn, `
		SELECT id, username, tanggal, kategori, deskripsi, durasi
		FROM activities
		WHERE id = ?`, &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlitelib.Stmt) error {
			activity = scanActivity(stmt)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, domain.ErrActivityNotFound
	}
	return activity, nil
}

func (r *activityRepository) ListByOwner(ctx context.Context, filter repository.ActivityFilter) ([]domain.Activity, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	var activities []domain.Activity
	err = sqlitex.Execute(conn, `
		SELECT id, username, tanggal, kategori, deskripsi, durasi
		FROM activities
		WHERE username = ?
		  AND (? = '' OR kategori = ?)
		  AND (? = '' OR tanggal >= ?)
		  AND (? = '' OR tanggal <= ?)
		ORDER BY tanggal, id`, &sqlitex.ExecOptions{
		Args: []any{
			filter.Username,
			filter.Category, filter.Category,
			filter.StartDate, filter.StartDate,
			filter.EndDate, filter.EndDate,
		},
		ResultFunc: func(stmt *sqlitelib.Stmt) error {
			activities = append(activities, *scanActivity(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	if activity == nil {
		return nil, domain.ErrInvalidPayload
	}

	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	err = sqlitex.Execute(conn, `
		INSERT INTO activities (username, tanggal, kategori, deskripsi, durasi)
		VALUES (?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
		Args: []any{
			activity.Username,
			activity.Date,
			activity.Category,
			activity.Description,
			activity.DurationMinutes,
		},
	})
	if err != nil {
		return nil, err
	}

	activity.ID = conn.LastInsertRowID()
	return activity, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	if activity == nil {
		return domain.ErrInvalidPayload
	}

	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	err = sqlitex.Execute(conn, `
		UPDATE activities
		SET kategori = ?, deskripsi = ?, durasi = ?
		WHERE id = ?`, &sqlitex.ExecOptions{
		Args: []any{
			activity.Category,
			activity.Description,
			activity.DurationMinutes,
			activity.ID,
		},
	})
	if err != nil {
		return err
	}
	if conn.Changes() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *activityRepository) Delete(ctx context.Context, id int64) error {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	err = sqlitex.Execute(conn, `DELETE FROM activities WHERE id = ?`, &sqlitex.ExecOptions{
		Args: []any{id},
	})
	if err != nil {
		return err
	}
	if conn.Changes() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func scanActivity(stmt *sqlitelib.Stmt) *domain.Activity {
	return &domain.Activity{
		ID:              stmt.ColumnInt64(0),
		Username:        stmt.ColumnText(1),
		Date:            stmt.ColumnText(2),
		Category:        stmt.ColumnText(3),
		Description:     stmt.ColumnText(4),
		DurationMinutes: stmt.ColumnInt(5),
	}
}
