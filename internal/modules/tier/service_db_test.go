package tier

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"velvetdir/internal/domain"
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

	require.NoError(t, db.AutoMigrate(&domain.Profile{}, &domain.Agency{}, &domain.AuditEntry{}))
	return db
}

// Two admins race free→premium and free→elite. The row write bundles
// tier, legacy flag and allowance in one UPDATE, so the survivor must
// be one complete bundle, never a mix.
func TestSetProfileTier_ConcurrentChangesLeaveOneCompleteState(t *testing.T) {
	db := testDB(t)
	svc := NewService(
		repository.NewProfileRepository(db),
		repository.NewAgencyRepository(db),
		repository.NewAuditRepository(db),
	)

	p := &domain.Profile{UserID: 1, Name: "Mia", Tier: domain.TierFree}
	require.NoError(t, db.Create(p).Error)

	var wg sync.WaitGroup
	for _, target := range []string{"premium", "elite"} {
		wg.Add(1)
		go func(tier string) {
			defer wg.Done()
			_, _ = svc.SetProfileTier(context.Background(), admin, p.ID, tier, nil)
		}(target)
	}
	wg.Wait()

	var stored domain.Profile
	require.NoError(t, db.First(&stored, p.ID).Error)

	switch stored.Tier {
	case domain.TierPremium:
		assert.True(t, stored.IsPremium)
		assert.Equal(t, ProfilePlanFor(domain.TierPremium).Boosts.Sentinel(), stored.BoostsRemaining)
	case domain.TierElite:
		assert.True(t, stored.IsPremium)
		assert.Equal(t, UnlimitedSentinel, stored.BoostsRemaining)
	default:
		t.Fatalf("unexpected final tier %q", stored.Tier)
	}
}
