package usecase

import (
	"context"

	"github.com/rekamjejak/backend/domain"
)

// OperationBuffer abstracts the buffer processor so use cases stay storage-agnostic.
type OperationBuffer interface {
	BufferActivity(ctx context.Context, operation string, activity *domain.Activity) error
}

// Operation names shared with the buffer layer.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)
