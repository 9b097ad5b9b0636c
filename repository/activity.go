package repository

import (
	"context"

	"github.com/rekamjejak/backend/domain"
)

type ActivityFilter struct {
	Username  string
	Category  string
	StartDate string
	EndDate   string
}

type ActivityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)

	// ListByOwner returns the owner's activities ordered by ascending
	// tanggal, then id. Date bounds in the filter are inclusive.
	ListByOwner(ctx context.Context, filter ActivityFilter) ([]domain.Activity, error)

	// Create appends one record and fills in the store-assigned id.
	Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error)

	// Update overwrites kategori, deskripsi, and durasi for the record
	// with the given id. Username and tanggal are immutable. A missing
	// id fails with domain.ErrActivityNotFound.
	Update(ctx context.Context, activity *domain.Activity) error

	// Delete removes the record with the given id, with the same
	// not-found semantics as Update.
	Delete(ctx context.Context, id int64) error
}
