package tier

import (
	"context"

	"velvetdir/internal/domain"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	CountByAgencyID(ctx context.Context, agencyID int64) (int64, error)
}

type AgencyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Agency, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
}

type AuditRecorder interface {
	Create(ctx context.Context, e *domain.AuditEntry) error
}
