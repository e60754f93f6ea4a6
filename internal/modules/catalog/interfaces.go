package catalog

import (
	"context"
	"time"

	"velvetdir/internal/domain"
	"velvetdir/internal/repository"
)

type ProfileRepository interface {
	List(ctx context.Context, f repository.ProfileFilters, now time.Time, page, limit int) ([]domain.Profile, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	ListByAgencyID(ctx context.Context, agencyID int64) ([]domain.Profile, error)
	IncrementCounter(ctx context.Context, id int64, column string) error
	BumpSearchAppearances(ctx context.Context, ids []int64) error
	CountActive(ctx context.Context) (int64, error)
}

type AgencyRepository interface {
	List(ctx context.Context, page, limit int) ([]domain.Agency, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Agency, error)
}
