package repository

import (
	"context"

	"velvetdir/internal/domain"

	"gorm.io/gorm"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) DB() *gorm.DB { return r.db }

func (r *VerificationRepository) Create(ctx context.Context, app *domain.VerificationApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *VerificationRepository) GetByID(ctx context.Context, id string) (*domain.VerificationApplication, error) {
	var app domain.VerificationApplication
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *VerificationRepository) HasPendingForProfile(ctx context.Context, profileID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.VerificationApplication{}).
		Where("profile_id = ? AND status = ?", profileID, domain.VerificationPending).
		Count(&count).Error
	return count > 0, err
}

func (r *VerificationRepository) Update(ctx context.Context, app *domain.VerificationApplication) error {
	return r.db.WithContext(ctx).Save(app).Error
}

// Decide writes a review decision only while the application is still
// pending. Returns false when another decision won the race.
func (r *VerificationRepository) Decide(ctx context.Context, id string, fields map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.VerificationApplication{}).
		Where("id = ? AND status = ?", id, domain.VerificationPending).
		Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *VerificationRepository) CountByStatus(ctx context.Context, status domain.VerificationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.VerificationApplication{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *VerificationRepository) ListByStatus(ctx context.Context, status domain.VerificationStatus, page, limit int) ([]domain.VerificationApplication, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.VerificationApplication{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []domain.VerificationApplication
	err := q.
		Order("created_at ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&apps).Error
	return apps, total, err
}
