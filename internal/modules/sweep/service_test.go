package sweep

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
	"velvetdir/internal/modules/tier"
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

	require.NoError(t, db.AutoMigrate(&domain.Profile{}, &domain.Subscription{}))
	return db
}

func newTestService(db *gorm.DB) *Service {
	return NewService(repository.NewSubscriptionRepository(db), repository.NewProfileRepository(db))
}

func seedExpiredPremium(t *testing.T, db *gorm.DB, now time.Time) *domain.Profile {
	p := &domain.Profile{
		UserID: 1, Name: "Mia", Tier: domain.TierPremium, IsPremium: true, BoostsRemaining: 2,
	}
	require.NoError(t, db.Create(p).Error)

	ended := now.Add(-48 * time.Hour)
	sub := &domain.Subscription{
		ID:        uuid.New().String(),
		ProfileID: p.ID,
		Tier:      domain.TierPremium,
		Status:    domain.SubscriptionActive,
		StartedAt: now.AddDate(0, -1, 0),
		EndDate:   &ended,
	}
	require.NoError(t, db.Create(sub).Error)
	return p
}

func TestRun_ExpiresAndDowngrades(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	p := seedExpiredPremium(t, db, now)
	svc := newTestService(db)

	report, err := svc.Run(context.Background(), ModeCheckSubscriptions, now)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Expired)
	assert.Equal(t, 1, report.Downgraded)
	assert.Empty(t, report.Failures)

	var stored domain.Profile
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, domain.TierFree, stored.Tier)
	assert.False(t, stored.IsPremium)
	assert.Equal(t, 0, stored.BoostsRemaining)

	var sub domain.Subscription
	require.NoError(t, db.Where("profile_id = ?", p.ID).First(&sub).Error)
	assert.Equal(t, domain.SubscriptionExpired, sub.Status)
}

func TestRun_SecondSweepIsNoOp(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	seedExpiredPremium(t, db, now)
	svc := newTestService(db)
	ctx := context.Background()

	first, err := svc.Run(ctx, ModeCheckSubscriptions, now)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Expired)

	second, err := svc.Run(ctx, ModeCheckSubscriptions, now)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Expired)
	assert.Equal(t, 0, second.Downgraded)
}

func TestRun_ActiveSubscriptionUntouched(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	p := &domain.Profile{UserID: 2, Name: "Vera", Tier: domain.TierElite, IsPremium: true}
	require.NoError(t, db.Create(p).Error)
	future := now.AddDate(0, 1, 0)
	require.NoError(t, db.Create(&domain.Subscription{
		ID: uuid.New().String(), ProfileID: p.ID, Tier: domain.TierElite,
		Status: domain.SubscriptionActive, StartedAt: now, EndDate: &future,
	}).Error)

	svc := newTestService(db)
	report, err := svc.Run(context.Background(), ModeCheckSubscriptions, now)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Expired)

	var stored domain.Profile
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, domain.TierElite, stored.Tier)
}

func TestRun_ResetBoostsRestoresAllowances(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	premium := &domain.Profile{UserID: 1, Name: "Mia", Tier: domain.TierPremium, IsPremium: true, BoostsRemaining: 0}
	elite := &domain.Profile{UserID: 2, Name: "Vera", Tier: domain.TierElite, IsPremium: true, BoostsRemaining: 17}
	free := &domain.Profile{UserID: 3, Name: "Lena", Tier: domain.TierFree, BoostsRemaining: 0}
	require.NoError(t, db.Create(premium).Error)
	require.NoError(t, db.Create(elite).Error)
	require.NoError(t, db.Create(free).Error)

	svc := newTestService(db)
	report, err := svc.Run(context.Background(), ModeResetBoosts, now)
	require.NoError(t, err)

	assert.EqualValues(t, 1, report.PremiumResets)
	assert.EqualValues(t, 1, report.EliteResets)

	var stored domain.Profile
	require.NoError(t, db.First(&stored, premium.ID).Error)
	assert.Equal(t, 3, stored.BoostsRemaining)

	stored = domain.Profile{}
	require.NoError(t, db.First(&stored, elite.ID).Error)
	assert.Equal(t, tier.UnlimitedSentinel, stored.BoostsRemaining)

	stored = domain.Profile{}
	require.NoError(t, db.First(&stored, free.ID).Error)
	assert.Equal(t, 0, stored.BoostsRemaining)
}

func TestRun_AllRunsResetOnlyOnFirstOfMonth(t *testing.T) {
	db := testDB(t)

	premium := &domain.Profile{UserID: 1, Name: "Mia", Tier: domain.TierPremium, IsPremium: true, BoostsRemaining: 0}
	require.NoError(t, db.Create(premium).Error)

	svc := newTestService(db)
	ctx := context.Background()

	midMonth := time.Date(2025, 6, 15, 3, 0, 0, 0, time.UTC)
	report, err := svc.Run(ctx, ModeAll, midMonth)
	require.NoError(t, err)
	assert.EqualValues(t, 0, report.PremiumResets)

	firstOfMonth := time.Date(2025, 7, 1, 3, 0, 0, 0, time.UTC)
	report, err = svc.Run(ctx, ModeAll, firstOfMonth)
	require.NoError(t, err)
	assert.EqualValues(t, 1, report.PremiumResets)
}

func TestRun_ManyExpiredAcrossBatches(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	for i := 0; i < 5; i++ {
		seedExpiredPremium(t, db, now)
	}

	svc := newTestService(db)
	svc.batchSize = 2

	report, err := svc.Run(context.Background(), ModeCheckSubscriptions, now)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Expired)
	assert.Equal(t, 5, report.Downgraded)
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"check-subscriptions", "reset-boosts", "all"} {
		_, err := ParseMode(valid)
		assert.NoError(t, err)
	}

	_, err := ParseMode("everything")
	assert.ErrorIs(t, err, ErrUnknownMode)
}
