package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rekamjejak/backend/domain"
	"github.com/rekamjejak/backend/repository"
)

type stubRepo struct {
	nextID  int64
	byID    map[int64]domain.Activity
	failAll error
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: make(map[int64]domain.Activity)}
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (*domain.Activity, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	a, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	return &a, nil
}

func (s *stubRepo) ListByOwner(_ context.Context, filter repository.ActivityFilter) ([]domain.Activity, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	var out []domain.Activity
	for _, a := range s.byID {
		if a.Username == filter.Username {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubRepo) Create(_ context.Context, activity *domain.Activity) (*domain.Activity, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	s.nextID++
	activity.ID = s.nextID
	s.byID[activity.ID] = *activity
	return activity, nil
}

func (s *stubRepo) Update(_ context.Context, activity *domain.Activity) error {
	if s.failAll != nil {
		return s.failAll
	}
	existing, ok := s.byID[activity.ID]
	if !ok {
		return domain.ErrActivityNotFound
	}
	existing.Category = activity.Category
	existing.Description = activity.Description
	existing.DurationMinutes = activity.DurationMinutes
	s.byID[activity.ID] = existing
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if s.failAll != nil {
		return s.failAll
	}
	if _, ok := s.byID[id]; !ok {
		return domain.ErrActivityNotFound
	}
	delete(s.byID, id)
	return nil
}

type stubBuffer struct {
	calls []string
}

func (b *stubBuffer) BufferActivity(_ context.Context, operation string, _ *domain.Activity) error {
	b.calls = append(b.calls, operation)
	return nil
}

func validActivity() *domain.Activity {
	return &domain.Activity{
		Username:        "izza",
		Date:            "2025-06-01",
		Category:        "Coding",
		Description:     "write tests",
		DurationMinutes: 60,
	}
}

func TestCreateValid(t *testing.T) {
	repo := newStubRepo()
	uc := New(repo, nil, nil)

	created, err := uc.Create(context.Background(), validActivity())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}

func TestCreateRejectsDurationOutOfBounds(t *testing.T) {
	repo := newStubRepo()
	uc := New(repo, nil, nil)

	for _, durasi := range []int{0, -5, 301} {
		a := validActivity()
		a.DurationMinutes = durasi
		_, err := uc.Create(context.Background(), a)
		require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid), "durasi %d must be rejected", durasi)
	}
	require.Empty(t, repo.byID)
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	uc := New(newStubRepo(), nil, nil)

	a := validActivity()
	a.Category = "Tidur"
	_, err := uc.Create(context.Background(), a)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestCreateRejectsMalformedDate(t *testing.T) {
	uc := New(newStubRepo(), nil, nil)

	a := validActivity()
	a.Date = "01-06-2025"
	_, err := uc.Create(context.Background(), a)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestUpdatePreservesOwnerAndDate(t *testing.T) {
	repo := newStubRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, validActivity())
	require.NoError(t, err)

	updated, err := uc.Update(ctx, &domain.Activity{
		ID:              created.ID,
		Username:        "izza",
		Category:        "Belajar",
		Description:     "revised",
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.Equal(t, "2025-06-01", updated.Date)

	stored := repo.byID[created.ID]
	require.Equal(t, "Belajar", stored.Category)
	require.Equal(t, "2025-06-01", stored.Date)
	require.Equal(t, "izza", stored.Username)
}

func TestUpdateMissingIDReportsNotFound(t *testing.T) {
	uc := New(newStubRepo(), nil, nil)

	_, err := uc.Update(context.Background(), &domain.Activity{
		ID: 404, Username: "izza", Category: "Coding", DurationMinutes: 10,
	})
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestUpdateForeignOwnerReportsNotFound(t *testing.T) {
	repo := newStubRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, validActivity())
	require.NoError(t, err)

	_, err = uc.Update(ctx, &domain.Activity{
		ID: created.ID, Username: "lain", Category: "Coding", DurationMinutes: 10,
	})
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestDelete(t *testing.T) {
	repo := newStubRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, validActivity())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, "izza", created.ID))
	require.Empty(t, repo.byID)

	require.ErrorIs(t, uc.Delete(ctx, "izza", created.ID), domain.ErrActivityNotFound)
}

func TestCreateBuffersOnStoreFailure(t *testing.T) {
	repo := newStubRepo()
	repo.failAll = errors.New("disk full")
	buf := &stubBuffer{}
	uc := New(repo, buf, nil)

	created, err := uc.Create(context.Background(), validActivity())
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, []string{"create"}, buf.calls)
}
