package verification

import (
	"context"
	"time"

	"velvetdir/internal/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.VerificationApplication) error
	GetByID(ctx context.Context, id string) (*domain.VerificationApplication, error)
	HasPendingForProfile(ctx context.Context, profileID int64) (bool, error)
	Decide(ctx context.Context, id string, fields map[string]any) (bool, error)
	ListByStatus(ctx context.Context, status domain.VerificationStatus, page, limit int) ([]domain.VerificationApplication, int64, error)
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	TouchLastActive(ctx context.Context, id int64, now time.Time) error
}

type AuditRecorder interface {
	Create(ctx context.Context, e *domain.AuditEntry) error
}
