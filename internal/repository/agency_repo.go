package repository

import (
	"context"

	"velvetdir/internal/domain"

	"gorm.io/gorm"
)

type AgencyRepository struct {
	db *gorm.DB
}

func NewAgencyRepository(db *gorm.DB) *AgencyRepository {
	return &AgencyRepository{db: db}
}

func (r *AgencyRepository) DB() *gorm.DB { return r.db }

func (r *AgencyRepository) Create(ctx context.Context, a *domain.Agency) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AgencyRepository) GetByID(ctx context.Context, id int64) (*domain.Agency, error) {
	var a domain.Agency
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AgencyRepository) Update(ctx context.Context, a *domain.Agency) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AgencyRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&domain.Agency{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *AgencyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Agency{}).Count(&count).Error
	return count, err
}

func (r *AgencyRepository) List(ctx context.Context, page, limit int) ([]domain.Agency, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Agency{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var agencies []domain.Agency
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&agencies).Error
	return agencies, total, err
}
