package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/cache"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/config"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/db"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/model"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/repository"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/service"
)

// demoLots are the lots created by the seeder when the database is empty.
var demoLots = []service.LotInput{
	{Name: "Central Plaza", PricePerHour: decimal.NewFromInt(20), Address: "12 MG Road, Bengaluru", Pincode: "560001", MaxSpots: 25},
	{Name: "Riverside Mall", PricePerHour: decimal.NewFromInt(15), Address: "3 Marine Drive, Mumbai", Pincode: "400002", MaxSpots: 40},
	{Name: "Station West", PricePerHour: decimal.NewFromFloat(12.5), Address: "1 Railway Colony, Pune", Pincode: "411001", MaxSpots: 15},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.ParkingLot{},
		&model.ParkingSpot{},
		&model.Reservation{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	repos := repository.New(gormDB)
	// The seeder runs without redis; a nil cache client is a no-op.
	lotService := service.NewLotService(repos, (*cache.Client)(nil))
	ctx := context.Background()

	existing, err := repos.Lots.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list lots: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Database already contains %d lots, nothing to do", len(existing))
		return
	}

	for _, in := range demoLots {
		lot, err := lotService.CreateLot(ctx, in)
		if err != nil {
			log.Fatalf("Failed to create lot %q: %v", in.Name, err)
		}
		log.Printf("Created lot %q (id=%d) with %d spots", lot.Name, lot.ID, lot.MaxSpots)
	}

	log.Printf("Seed completed successfully, %d lots created", len(demoLots))
}
