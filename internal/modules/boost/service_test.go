package boost

import (
	"context"
	"sync"
	"testing"
	"time"

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

	// A single in-memory sqlite connection; concurrent callers
	// serialize here while the UPDATE predicate enforces correctness.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.Profile{}, &domain.AuditEntry{}))
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, p *domain.Profile) *domain.Profile {
	require.NoError(t, db.Create(p).Error)
	return p
}

func newTestService(db *gorm.DB) *Service {
	return NewService(repository.NewProfileRepository(db), repository.NewAuditRepository(db))
}

func TestActivate_FreeTierNotAllowed(t *testing.T) {
	db := testDB(t)
	p := seedProfile(t, db, &domain.Profile{UserID: 1, Name: "Mia", Tier: domain.TierFree})
	svc := newTestService(db)

	_, err := svc.Activate(context.Background(), p.ID, time.Now())

	assert.ErrorIs(t, err, ErrTierNotAllowed)
	assert.Equal(t, "TIER_NOT_ALLOWED", Code(err))
}

func TestActivate_PremiumWithoutAllowance(t *testing.T) {
	db := testDB(t)
	p := seedProfile(t, db, &domain.Profile{
		UserID: 1, Name: "Mia", Tier: domain.TierPremium, IsPremium: true, BoostsRemaining: 0,
	})
	svc := newTestService(db)

	_, err := svc.Activate(context.Background(), p.ID, time.Now())

	assert.ErrorIs(t, err, ErrNoBoostsRemaining)
	assert.Equal(t, "NO_BOOSTS_REMAINING", Code(err))
}

func TestActivate_PremiumDecrementsAndSetsWindow(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	p := seedProfile(t, db, &domain.Profile{
		UserID: 1, Name: "Mia", Tier: domain.TierPremium, IsPremium: true, BoostsRemaining: 3,
	})
	svc := newTestService(db)

	st, err := svc.Activate(context.Background(), p.ID, now)
	require.NoError(t, err)

	assert.True(t, st.Active)
	assert.Equal(t, "2", st.Allowance)
	require.NotNil(t, st.BoostedUntil)
	assert.WithinDuration(t, now.Add(BoostDuration), *st.BoostedUntil, time.Second)

	var stored domain.Profile
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, 2, stored.BoostsRemaining)
}

func TestActivate_EliteNeverDecrements(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	p := seedProfile(t, db, &domain.Profile{
		UserID: 1, Name: "Mia", Tier: domain.TierElite, IsPremium: true,
		BoostsRemaining: tier.UnlimitedSentinel,
	})
	svc := newTestService(db)

	st, err := svc.Activate(context.Background(), p.ID, now)
	require.NoError(t, err)

	assert.True(t, st.Active)
	assert.Equal(t, "unlimited", st.Allowance)

	var stored domain.Profile
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, tier.UnlimitedSentinel, stored.BoostsRemaining)
}

func TestActivate_AlreadyBoostedDoesNotStack(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	until := now.Add(6 * time.Hour)
	p := seedProfile(t, db, &domain.Profile{
		UserID: 1, Name: "Mia", Tier: domain.TierPremium, IsPremium: true,
		BoostsRemaining: 3, BoostedUntil: &until,
	})
	svc := newTestService(db)

	_, err := svc.Activate(context.Background(), p.ID, now)

	assert.ErrorIs(t, err, ErrAlreadyBoosted)

	var stored domain.Profile
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, 3, stored.BoostsRemaining)
	assert.WithinDuration(t, until, *stored.BoostedUntil, time.Second)
}

func TestActivate_ExpiredWindowCanBeReplaced(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	past := now.Add(-1 * time.Hour)
	p := seedProfile(t, db, &domain.Profile{
		UserID: 1, Name: "Mia", Tier: domain.TierPremium, IsPremium: true,
		BoostsRemaining: 1, BoostedUntil: &past,
	})
	svc := newTestService(db)

	st, err := svc.Activate(context.Background(), p.ID, now)
	require.NoError(t, err)
	assert.True(t, st.Active)
}

func TestActivate_NotFound(t *testing.T) {
	db := testDB(t)
	svc := newTestService(db)

	_, err := svc.Activate(context.Background(), 404, time.Now())

	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestActivate_ConcurrentRequestsSpendExactlyOneBoost(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	p := seedProfile(t, db, &domain.Profile{
		UserID: 1, Name: "Mia", Tier: domain.TierPremium, IsPremium: true, BoostsRemaining: 1,
	})
	svc := newTestService(db)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Activate(context.Background(), p.ID, now)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		if !assert.True(t,
			err == ErrAlreadyBoosted || err == ErrNoBoostsRemaining,
			"unexpected activation error: %v", err,
		) {
			t.FailNow()
		}
	}
	assert.Equal(t, 1, successes)

	var stored domain.Profile
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, 0, stored.BoostsRemaining)
	assert.True(t, stored.BoostActive(now))
}

func TestCurrentStatus_InactiveProfile(t *testing.T) {
	db := testDB(t)
	p := seedProfile(t, db, &domain.Profile{
		UserID: 1, Name: "Mia", Tier: domain.TierPremium, IsPremium: true, BoostsRemaining: 2,
	})
	svc := newTestService(db)

	st, err := svc.CurrentStatus(context.Background(), p.ID, time.Now())
	require.NoError(t, err)

	assert.True(t, st.CanBoost)
	assert.False(t, st.Active)
	assert.Nil(t, st.BoostedUntil)
	assert.Equal(t, "2", st.Allowance)
}

func TestAdminActions(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	admin := domain.Actor{ID: 99, Role: domain.RoleAdmin}
	p := seedProfile(t, db, &domain.Profile{
		UserID: 1, Name: "Mia", Tier: domain.TierFree, BoostsRemaining: 0,
	})
	svc := newTestService(db)
	ctx := context.Background()

	// grant ignores the tier gate
	st, err := svc.ApplyAdminAction(ctx, admin, p.ID, ActionGrant, now)
	require.NoError(t, err)
	assert.Equal(t, "1", st.Allowance)

	// force-activate works even on free tier
	st, err = svc.ApplyAdminAction(ctx, admin, p.ID, ActionActivate, now)
	require.NoError(t, err)
	assert.True(t, st.Active)

	// deactivate clears the window
	st, err = svc.ApplyAdminAction(ctx, admin, p.ID, ActionDeactivate, now)
	require.NoError(t, err)
	assert.False(t, st.Active)

	// reset returns the counter to the tier default (free = 0)
	st, err = svc.ApplyAdminAction(ctx, admin, p.ID, ActionReset, now)
	require.NoError(t, err)
	assert.Equal(t, "0", st.Allowance)

	// every admin action leaves an audit trail
	var auditCount int64
	require.NoError(t, db.Model(&domain.AuditEntry{}).Count(&auditCount).Error)
	assert.EqualValues(t, 4, auditCount)
}

func TestParseAdminAction(t *testing.T) {
	_, err := ParseAdminAction("supercharge")
	assert.ErrorIs(t, err, ErrUnknownAction)

	action, err := ParseAdminAction("reset")
	assert.NoError(t, err)
	assert.Equal(t, ActionReset, action)
}
