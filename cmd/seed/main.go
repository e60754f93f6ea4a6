package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"velvetdir/internal/config"
	"velvetdir/internal/database"
	"velvetdir/internal/domain"
	"velvetdir/internal/pkg/utils"
	"velvetdir/internal/repository"
)

// Seeds a fresh database with an admin account, one provider with a
// premium profile and one agency. Safe to re-run: existing emails are
// skipped.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)
	agencies := repository.NewAgencyRepository(db)

	seedUser(ctx, users, "admin@velvetdir.local", "admin123!", "Admin", domain.RoleAdmin)
	provider := seedUser(ctx, users, "mia@velvetdir.local", "provider123!", "Mia", domain.RoleProvider)
	agencyOwner := seedUser(ctx, users, "crew@velvetdir.local", "agency123!", "Crew Owner", domain.RoleAgency)

	if provider != nil {
		now := time.Now()
		p := &domain.Profile{
			UserID:          provider.ID,
			Name:            "Mia",
			Age:             26,
			District:        "center",
			PriceStart:      250,
			Description:     "Elegant companion for dinner dates, gallery openings and weekend getaways.",
			Images:          utils.ListToString([]string{"https://cdn.velvetdir.local/mia/1.jpg", "https://cdn.velvetdir.local/mia/2.jpg"}),
			Services:        utils.ListToString([]string{"dinner-date", "event-companion"}),
			Languages:       utils.ListToString([]string{"english", "french"}),
			Phone:           "+1 555 0100",
			Tier:            domain.TierPremium,
			IsPremium:       true,
			BoostsRemaining: 3,
			LastActiveAt:    &now,
		}
		if err := profiles.Create(ctx, p); err != nil {
			log.Printf("seed profile: %v", err)
		}
	}

	if agencyOwner != nil {
		a := &domain.Agency{
			UserID:           agencyOwner.ID,
			Name:             "Velvet Crew",
			District:         "riverside",
			Description:      "Boutique agency with a small curated roster.",
			SubscriptionTier: domain.AgencyTierStarter,
			ModelLimit:       5,
		}
		if err := agencies.Create(ctx, a); err != nil {
			log.Printf("seed agency: %v", err)
		}
	}

	log.Println("seed complete")
}

func seedUser(ctx context.Context, users *repository.UserRepository, email, password, name string, role domain.UserRole) *domain.User {
	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		log.Fatalf("seed user %s: %v", email, err)
	}
	if exists {
		log.Printf("skip existing user email=%s", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("seed user %s: %v", email, err)
	}
	log.Printf("seeded user email=%s role=%s", email, role)
	return u
}
