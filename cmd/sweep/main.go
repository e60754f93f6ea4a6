package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"velvetdir/internal/config"
	"velvetdir/internal/database"
	"velvetdir/internal/modules/sweep"
	"velvetdir/internal/repository"
)

// Cron entrypoint. Typical crontab:
//
//	0 3 * * *  /usr/local/bin/sweep -mode all
func main() {
	mode := flag.String("mode", string(sweep.ModeAll), "check-subscriptions | reset-boosts | all")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	parsed, err := sweep.ParseMode(*mode)
	if err != nil {
		log.Fatalf("mode: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	svc := sweep.NewService(
		repository.NewSubscriptionRepository(db),
		repository.NewProfileRepository(db),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	report, err := svc.Run(ctx, parsed, time.Now())
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}

	log.Printf("sweep_report mode=%s expired=%d downgraded=%d premium_resets=%d elite_resets=%d failures=%d",
		report.Mode, report.Expired, report.Downgraded, report.PremiumResets, report.EliteResets, len(report.Failures))
}
