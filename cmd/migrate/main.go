package main

import (
	"flag"
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/johnquangdev/mom-service/internal/infrastructure/database"
	"github.com/johnquangdev/mom-service/pkg/config"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying")
	steps := flag.Int("steps", 0, "maximum number of migrations to run (0 = all; down defaults to 1)")
	dir := flag.String("dir", "", "migrations directory (defaults to DB_MIGRATIONS_DIR)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *dir == "" {
		*dir = cfg.Database.MigrationsDir
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")

	direction := migrate.Up
	max := *steps
	if *down {
		direction = migrate.Down
		if max == 0 {
			max = 1
		}
		log.Printf("⏪ Rolling back %d migration(s) from %s/ ...", max, *dir)
	} else {
		log.Printf("🔄 Applying migrations from %s/ directory...", *dir)
	}

	n, err := database.Migrate(db, *dir, direction, max)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Printf("✅ Successfully ran %d migration(s)!\n", n)
	os.Exit(0)
}
