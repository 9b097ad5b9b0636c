package activity

import (
	"context"

	"go.uber.org/zap"

	"github.com/rekamjejak/backend/domain"
	"github.com/rekamjejak/backend/repository"
	"github.com/rekamjejak/backend/usecase"
)

// UseCase guards the activity store. Validation happens here rather than
// being trusted from the caller, so the persisted rows always satisfy the
// duration and category invariants.
type UseCase struct {
	activities repository.ActivityRepository
	buffer     usecase.OperationBuffer
	logger     *zap.Logger
}

func New(activities repository.ActivityRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		activities: activities,
		buffer:     buffer,
		logger:     logger,
	}
}

func (uc *UseCase) List(ctx context.Context, filter repository.ActivityFilter) ([]domain.Activity, error) {
	return uc.activities.ListByOwner(ctx, filter)
}

func (uc *UseCase) Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	if err := activity.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.activities.Create(ctx, activity)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, activity) {
			return activity, nil
		}
		return nil, err
	}
	return created, nil
}

// Update overwrites kategori, deskripsi, and durasi of the record with
// activity.ID. It first loads the stored row to keep owner and date
// untouched and to confirm the caller owns the record.
func (uc *UseCase) Update(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	existing, err := uc.activities.GetByID(ctx, activity.ID)
	if err != nil {
		return nil, err
	}
	if existing.Username != activity.Username {
		return nil, domain.ErrActivityNotFound
	}

	activity.Date = existing.Date
	if err := activity.Validate(); err != nil {
		return nil, err
	}

	if err := uc.activities.Update(ctx, activity); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, activity) {
			return activity, nil
		}
		return nil, err
	}
	return activity, nil
}

func (uc *UseCase) Delete(ctx context.Context, owner string, id int64) error {
	existing, err := uc.activities.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Username != owner {
		return domain.ErrActivityNotFound
	}

	if err := uc.activities.Delete(ctx, id); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, existing) {
			return nil
		}
		return err
	}
	return nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, activity *domain.Activity) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferActivity(ctx, operation, activity); err != nil {
		uc.logger.Error("failed to buffer activity operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("activity operation buffered", zap.String("operation", operation))
	return true
}
