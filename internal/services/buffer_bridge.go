package services

import (
	"context"
	"encoding/json"

	"github.com/rekamjejak/backend/domain"
	"github.com/rekamjejak/backend/internal/infrastructure/buffer"
	"github.com/rekamjejak/backend/usecase"
)

// BufferBridge exposes the processor to the usecase layer without leaking
// buffer internals into it.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferActivity(ctx context.Context, operation string, activity *domain.Activity) error {
	if b.processor == nil || activity == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(activity)
	if err != nil {
		return err
	}
	item := buffer.Item{
		Owner:     activity.Username,
		Operation: operation,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
