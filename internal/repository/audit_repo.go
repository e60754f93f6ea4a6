package repository

import (
	"context"

	"velvetdir/internal/domain"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, e *domain.AuditEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *AuditRepository) ListBySubject(ctx context.Context, subjectType string, subjectID int64, limit int) ([]domain.AuditEntry, error) {
	var entries []domain.AuditEntry
	err := r.db.WithContext(ctx).
		Where("subject_type = ? AND subject_id = ?", subjectType, subjectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
