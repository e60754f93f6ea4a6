package repository

import (
	"context"
	"strings"
	"time"

	"velvetdir/internal/domain"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) DB() *gorm.DB { return r.db }

// ProfileFilters narrows the public listing. Zero values mean "no
// filter" except Page/Limit which are normalized by the caller.
type ProfileFilters struct {
	District     string
	Service      string
	Language     string
	MinPrice     int
	MaxPrice     int
	VerifiedOnly bool
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// UpdateFields writes a single row with an explicit column map. Used
// by tier/boost services so each mutation is one atomic UPDATE.
func (r *ProfileRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// List returns visible profiles ordered boosted-first, then editorial
// picks, then recency. Disabled profiles never appear.
func (r *ProfileRepository) List(ctx context.Context, f ProfileFilters, now time.Time, page, limit int) ([]domain.Profile, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Profile{}).Where("is_disabled = ?", false)

	if d := strings.TrimSpace(f.District); d != "" {
		q = q.Where("district = ?", d)
	}
	if s := strings.TrimSpace(f.Service); s != "" {
		q = q.Where(`services LIKE ?`, `%"`+s+`"%`)
	}
	if l := strings.TrimSpace(f.Language); l != "" {
		q = q.Where(`languages LIKE ?`, `%"`+l+`"%`)
	}
	if f.MinPrice > 0 {
		q = q.Where("price_start >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price_start <= ?", f.MaxPrice)
	}
	if f.VerifiedOnly {
		q = q.Where("is_verified = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []domain.Profile
	err := q.
		Order(gorm.Expr("CASE WHEN boosted_until IS NOT NULL AND boosted_until > ? THEN 1 ELSE 0 END DESC", now)).
		Order("is_velvet_choice DESC").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// ListAdmin returns every profile, disabled ones included, for the
// operator console.
func (r *ProfileRepository) ListAdmin(ctx context.Context, district string, page, limit int) ([]domain.Profile, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Profile{})
	if d := strings.TrimSpace(district); d != "" {
		q = q.Where("district = ?", d)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []domain.Profile
	err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&profiles).Error
	return profiles, total, err
}

func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Profile{}).Count(&count).Error
	return count, err
}

// CountBoosted counts profiles with a live boost window.
func (r *ProfileRepository) CountBoosted(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("boosted_until IS NOT NULL AND boosted_until > ?", now).
		Count(&count).Error
	return count, err
}

// CountActive backs the public statistics endpoint.
func (r *ProfileRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("is_disabled = ?", false).
		Count(&count).Error
	return count, err
}

func (r *ProfileRepository) CountByAgencyID(ctx context.Context, agencyID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("agency_id = ?", agencyID).
		Count(&count).Error
	return count, err
}

func (r *ProfileRepository) ListByAgencyID(ctx context.Context, agencyID int64) ([]domain.Profile, error) {
	var profiles []domain.Profile
	err := r.db.WithContext(ctx).
		Where("agency_id = ? AND is_disabled = ?", agencyID, false).
		Order("created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

// IncrementCounter bumps a monotonic engagement counter without
// read-modify-write.
func (r *ProfileRepository) IncrementCounter(ctx context.Context, id int64, column string) error {
	switch column {
	case "clicks", "contact_clicks", "search_appearances":
	default:
		return gorm.ErrInvalidField
	}
	return r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

// BumpSearchAppearances increments search_appearances for a batch of
// returned listing rows in one statement.
func (r *ProfileRepository) BumpSearchAppearances(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id IN ?", ids).
		UpdateColumn("search_appearances", gorm.Expr("search_appearances + 1")).Error
}

func (r *ProfileRepository) TouchLastActive(ctx context.Context, id int64, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", id).
		UpdateColumn("last_active_at", now).Error
}
