package admin

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"velvetdir/internal/domain"
	"velvetdir/internal/modules/fraud"
	"velvetdir/internal/pkg/utils"
	"velvetdir/internal/repository"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Profile{},
		&domain.Agency{},
		&domain.Subscription{},
		&domain.VerificationApplication{},
		&domain.AuditEntry{},
	))
	return db
}

func newTestService(db *gorm.DB) *Service {
	return NewService(
		repository.NewProfileRepository(db),
		repository.NewAgencyRepository(db),
		repository.NewVerificationRepository(db),
		repository.NewSubscriptionRepository(db),
		repository.NewAuditRepository(db),
	)
}

var adminActor = domain.Actor{ID: 1, Role: domain.RoleAdmin}

// healthyProfile fills every field the risk engine checks so its
// score stays at zero.
func healthyProfile(name string) *domain.Profile {
	now := time.Now()
	return &domain.Profile{
		UserID:       2,
		Name:         name,
		Age:          25,
		District:     "center",
		PriceStart:   200,
		Description:  "An experienced companion available for dinner dates and events around the city.",
		Images:       utils.ListToString([]string{"a.jpg", "b.jpg", "c.jpg"}),
		Phone:        "+100200300",
		Services:     utils.ListToString([]string{"dinner-date"}),
		Languages:    utils.ListToString([]string{"english"}),
		IsVerified:   true,
		Tier:         domain.TierFree,
		LastActiveAt: &now,
	}
}

func TestListProfiles_EmbedsFraudAndFilters(t *testing.T) {
	db := testDB(t)
	svc := newTestService(db)

	require.NoError(t, db.Create(healthyProfile("clean")).Error)
	risky := &domain.Profile{UserID: 3, Name: "risky", Age: 25, Tier: domain.TierFree}
	require.NoError(t, db.Create(risky).Error)

	all, err := svc.ListProfiles(context.Background(), "", false, false, 1, 20)
	require.NoError(t, err)
	require.Len(t, all.Profiles, 2)
	for _, row := range all.Profiles {
		if row.Profile.Name == "clean" {
			assert.Equal(t, fraud.LevelSafe, row.Fraud.Level)
		} else {
			assert.True(t, row.Fraud.Level.Flagged())
		}
	}

	flagged, err := svc.ListProfiles(context.Background(), "", true, false, 1, 20)
	require.NoError(t, err)
	require.Len(t, flagged.Profiles, 1)
	assert.Equal(t, "risky", flagged.Profiles[0].Profile.Name)
}

func TestListProfiles_SortByScoreAndIncludesDisabled(t *testing.T) {
	db := testDB(t)
	svc := newTestService(db)

	clean := healthyProfile("clean")
	clean.IsDisabled = true
	require.NoError(t, db.Create(clean).Error)
	require.NoError(t, db.Create(&domain.Profile{UserID: 3, Name: "risky", Age: 25, Tier: domain.TierFree}).Error)

	result, err := svc.ListProfiles(context.Background(), "", false, true, 1, 20)
	require.NoError(t, err)

	require.Len(t, result.Profiles, 2)
	assert.Equal(t, "risky", result.Profiles[0].Profile.Name)
	assert.GreaterOrEqual(t, result.Profiles[0].Fraud.Score, result.Profiles[1].Fraud.Score)
}

func TestAnalyzeProfile(t *testing.T) {
	db := testDB(t)
	svc := newTestService(db)

	p := healthyProfile("clean")
	require.NoError(t, db.Create(p).Error)

	analysis, err := svc.AnalyzeProfile(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Zero(t, analysis.Score)
	assert.Empty(t, analysis.Indicators)

	_, err = svc.AnalyzeProfile(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestSetProfileDisabled_TogglesAndAudits(t *testing.T) {
	db := testDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	p := healthyProfile("toggle")
	require.NoError(t, db.Create(p).Error)

	updated, err := svc.SetProfileDisabled(ctx, adminActor, p.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsDisabled)

	// repeating the same state is a no-op and writes no audit entry
	_, err = svc.SetProfileDisabled(ctx, adminActor, p.ID, true)
	require.NoError(t, err)

	updated, err = svc.SetProfileDisabled(ctx, adminActor, p.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsDisabled)

	var entries []domain.AuditEntry
	require.NoError(t, db.Order("created_at ASC").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, "profile.disable", entries[0].Action)
	assert.Equal(t, "profile.enable", entries[1].Action)

	trail, err := svc.AuditTrail(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Len(t, trail, 2)

	_, err = svc.AuditTrail(ctx, 9999, 0)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestDashboard(t *testing.T) {
	db := testDB(t)
	svc := newTestService(db)
	now := time.Now()

	enabled := healthyProfile("enabled")
	until := now.Add(2 * time.Hour)
	enabled.BoostedUntil = &until
	require.NoError(t, db.Create(enabled).Error)

	disabled := healthyProfile("disabled")
	disabled.IsDisabled = true
	require.NoError(t, db.Create(disabled).Error)

	require.NoError(t, db.Create(&domain.Agency{UserID: 5, Name: "crew", SubscriptionTier: domain.AgencyTierNone}).Error)

	require.NoError(t, db.Create(&domain.VerificationApplication{
		ID: uuid.New().String(), ProfileID: enabled.ID, UserID: 2,
		Status: domain.VerificationPending, CreatedAt: now, UpdatedAt: now,
	}).Error)

	soon := now.Add(48 * time.Hour)
	far := now.Add(60 * 24 * time.Hour)
	require.NoError(t, db.Create(&domain.Subscription{
		ID: uuid.New().String(), ProfileID: enabled.ID, Tier: domain.TierPremium,
		Status: domain.SubscriptionActive, EndDate: &soon, CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&domain.Subscription{
		ID: uuid.New().String(), ProfileID: disabled.ID, Tier: domain.TierElite,
		Status: domain.SubscriptionActive, EndDate: &far, CreatedAt: now, UpdatedAt: now,
	}).Error)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.Profiles)
	assert.EqualValues(t, 1, stats.ActiveProfiles)
	assert.EqualValues(t, 1, stats.Agencies)
	assert.EqualValues(t, 1, stats.PendingVerifications)
	assert.EqualValues(t, 1, stats.ActiveBoosts)
	assert.EqualValues(t, 1, stats.ExpiringSubscriptions)
}
