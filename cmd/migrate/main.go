package main

import (
	"context"
	"flag"
	"os"

	"storefront-be/internal/config"
	"storefront-be/internal/model"
	"storefront-be/pkg/database"
	"storefront-be/pkg/events"
	pktNats "storefront-be/pkg/nats"

	"github.com/fatih/color"
)

func main() {
	seed := flag.Bool("seed", false, "insert demo categories and products")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Starting GORM migration...")

	// gen_random_uuid() lives in pgcrypto on older Postgres versions.
	color.Yellow("Step 1: Setting up extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		color.Yellow("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	color.Yellow("Step 2: Running AutoMigrate for 6 tables...")
	models := []interface{}{
		&model.Category{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.ChatMessage{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	if *seed {
		color.Yellow("Step 3: Seeding demo catalog...")
		created, err := seedCatalog(db)
		if err != nil {
			color.Red("Error: Seeding failed: %v", err)
			os.Exit(1)
		}
		color.Green("Seeded %d new products", created)
		if created > 0 {
			announceCatalogUpdate(cfg.App.NatsURL)
		}
	}

	color.Green("Success: database migration completed.")
}

// announceCatalogUpdate lets running API instances drop their cached catalog.
func announceCatalogUpdate(natsURL string) {
	publisher, err := pktNats.NewPublisher(natsURL)
	if err != nil {
		color.Yellow("Warn: NATS unavailable, running instances keep their cache until TTL: %v", err)
		return
	}
	defer publisher.Close()

	event := events.BaseEvent{Type: events.CatalogUpdated, Data: map[string]interface{}{"source": "migrate"}}
	if err := publisher.Publish(context.Background(), event); err != nil {
		color.Yellow("Warn: Failed to publish %s: %v", events.CatalogUpdated, err)
	}
}
