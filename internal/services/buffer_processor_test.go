package services

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rekamjejak/backend/domain"
	"github.com/rekamjejak/backend/internal/infrastructure/buffer"
	"github.com/rekamjejak/backend/repository"
)

type stubActivities struct {
	nextID  int64
	byID    map[int64]domain.Activity
	failAll error

	creates int
	updates int
	deletes int
}

func newStubActivities() *stubActivities {
	return &stubActivities{byID: make(map[int64]domain.Activity)}
}

func (s *stubActivities) GetByID(_ context.Context, id int64) (*domain.Activity, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	a, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	return &a, nil
}

func (s *stubActivities) ListByOwner(_ context.Context, filter repository.ActivityFilter) ([]domain.Activity, error) {
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

func (s *stubActivities) Create(_ context.Context, activity *domain.Activity) (*domain.Activity, error) {
	s.creates++
	if s.failAll != nil {
		return nil, s.failAll
	}
	s.nextID++
	activity.ID = s.nextID
	s.byID[activity.ID] = *activity
	return activity, nil
}

func (s *stubActivities) Update(_ context.Context, activity *domain.Activity) error {
	s.updates++
	if s.failAll != nil {
		return s.failAll
	}
	if _, ok := s.byID[activity.ID]; !ok {
		return domain.ErrActivityNotFound
	}
	s.byID[activity.ID] = *activity
	return nil
}

func (s *stubActivities) Delete(_ context.Context, id int64) error {
	s.deletes++
	if s.failAll != nil {
		return s.failAll
	}
	if _, ok := s.byID[id]; !ok {
		return domain.ErrActivityNotFound
	}
	delete(s.byID, id)
	return nil
}

type stubHealth struct {
	online bool
}

func (s *stubHealth) IsOnline() bool { return s.online }

func openTestBuffer(t *testing.T) *buffer.Store {
	t.Helper()

	store, err := buffer.Open(filepath.Join(t.TempDir(), "buffer_test.db"), "buffer")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func enqueueActivity(t *testing.T, store *buffer.Store, operation string, activity domain.Activity) {
	t.Helper()

	payload, err := json.Marshal(activity)
	require.NoError(t, err)
	require.NoError(t, store.Enqueue(buffer.Item{
		Owner:     activity.Username,
		Operation: operation,
		Data:      payload,
	}))
}

func bufferedSize(t *testing.T, store *buffer.Store) int {
	t.Helper()

	size, err := store.Size()
	require.NoError(t, err)
	return size
}

func TestDrainReplaysBufferedCreate(t *testing.T) {
	store := openTestBuffer(t)
	repo := newStubActivities()
	bp := NewBufferProcessor(store, &stubHealth{online: true}, repo, nil, ProcessorConfig{})

	enqueueActivity(t, store, buffer.OperationCreate, domain.Activity{
		Username: "izza", Date: "2025-06-01", Category: "Coding", DurationMinutes: 45,
	})

	require.NoError(t, bp.Drain(context.Background()))

	require.Zero(t, bufferedSize(t, store))
	require.Len(t, repo.byID, 1)
	for _, a := range repo.byID {
		require.Equal(t, "izza", a.Username)
		require.Equal(t, 45, a.DurationMinutes)
	}
}

func TestDrainSkipsWhileStoreOffline(t *testing.T) {
	store := openTestBuffer(t)
	repo := newStubActivities()
	bp := NewBufferProcessor(store, &stubHealth{online: false}, repo, nil, ProcessorConfig{})

	enqueueActivity(t, store, buffer.OperationCreate, domain.Activity{
		Username: "izza", Date: "2025-06-01", Category: "Coding", DurationMinutes: 45,
	})

	require.NoError(t, bp.Drain(context.Background()))

	// Nothing replayed, nothing lost.
	require.Equal(t, 1, bufferedSize(t, store))
	require.Zero(t, repo.creates)
}

func TestDrainDropsItemWhenTargetGone(t *testing.T) {
	store := openTestBuffer(t)
	repo := newStubActivities()
	bp := NewBufferProcessor(store, &stubHealth{online: true}, repo, nil, ProcessorConfig{})

	// An update buffered for a record that was deleted before replay.
	enqueueActivity(t, store, buffer.OperationUpdate, domain.Activity{
		ID: 404, Username: "izza", Category: "Coding", DurationMinutes: 10,
	})

	require.NoError(t, bp.Drain(context.Background()))

	// Replaying again would never succeed, so the item is evicted.
	require.Zero(t, bufferedSize(t, store))
	require.Equal(t, 1, repo.updates)
}

func TestDrainEvictsAfterMaxRetries(t *testing.T) {
	store := openTestBuffer(t)
	repo := newStubActivities()
	repo.failAll = errors.New("disk full")
	bp := NewBufferProcessor(store, &stubHealth{online: true}, repo, nil, ProcessorConfig{MaxRetries: 2})

	enqueueActivity(t, store, buffer.OperationCreate, domain.Activity{
		Username: "izza", Date: "2025-06-01", Category: "Coding", DurationMinutes: 45,
	})

	require.NoError(t, bp.Drain(context.Background()))
	require.Equal(t, 1, bufferedSize(t, store))

	require.NoError(t, bp.Drain(context.Background()))
	require.Zero(t, bufferedSize(t, store))
	require.Equal(t, 2, repo.creates)
}

func TestBufferOperationReplaysImmediatelyWhenOnline(t *testing.T) {
	store := openTestBuffer(t)
	repo := newStubActivities()
	bp := NewBufferProcessor(store, &stubHealth{online: true}, repo, nil, ProcessorConfig{})

	payload, err := json.Marshal(domain.Activity{
		Username: "izza", Date: "2025-06-01", Category: "Coding", DurationMinutes: 45,
	})
	require.NoError(t, err)

	require.NoError(t, bp.BufferOperation(context.Background(), buffer.Item{
		Owner: "izza", Operation: buffer.OperationCreate, Data: payload,
	}))

	require.Len(t, repo.byID, 1)
	require.Zero(t, bufferedSize(t, store))
}

func TestBufferOperationEnqueuesWhenOffline(t *testing.T) {
	store := openTestBuffer(t)
	repo := newStubActivities()
	bp := NewBufferProcessor(store, &stubHealth{online: false}, repo, nil, ProcessorConfig{})

	payload, err := json.Marshal(domain.Activity{
		Username: "izza", Date: "2025-06-01", Category: "Coding", DurationMinutes: 45,
	})
	require.NoError(t, err)

	require.NoError(t, bp.BufferOperation(context.Background(), buffer.Item{
		Owner: "izza", Operation: buffer.OperationCreate, Data: payload,
	}))

	require.Zero(t, repo.creates)
	require.Equal(t, 1, bufferedSize(t, store))
}

func TestBridgeDeliversUsecaseOperations(t *testing.T) {
	store := openTestBuffer(t)
	repo := newStubActivities()
	bp := NewBufferProcessor(store, &stubHealth{online: true}, repo, nil, ProcessorConfig{})
	bridge := NewBufferBridge(bp)

	err := bridge.BufferActivity(context.Background(), buffer.OperationCreate, &domain.Activity{
		Username: "izza", Date: "2025-06-01", Category: "Coding", DurationMinutes: 45,
	})
	require.NoError(t, err)
	require.Len(t, repo.byID, 1)

	require.ErrorIs(t,
		bridge.BufferActivity(context.Background(), buffer.OperationCreate, nil),
		domain.ErrInvalidPayload)
}
