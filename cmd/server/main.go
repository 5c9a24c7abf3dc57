package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "github.com/Shivansh-Dutt/vehicle-parking-app/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/auth"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/cache"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/config"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/db"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/handler"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/model"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/repository"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/router"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/service"
)

// @title Vehicle Parking API
// @version 1.0
// @description Parking lot reservation API with lot management, spot booking and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Reservation{},
			&model.ParkingSpot{},
			&model.ParkingLot{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.ParkingLot{},
		&model.ParkingSpot{},
		&model.Reservation{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	repos := repository.New(gormDB)

	// Bootstrap the admin account before serving requests
	if err := bootstrapAdmin(context.Background(), repos.Users, cfg); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(repos.Users, jwtService, tokenStore, cfg.AdminEmail)
	lotService := service.NewLotService(repos, cacheClient)
	bookingService := service.NewBookingService(repos, cacheClient)
	userService := service.NewUserService(repos.Users)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(lotService)
	userHandler := handler.NewUserHandler(userService, bookingService, lotService)

	// Register routes
	router.Register(e, cfg, authHandler, adminHandler, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// bootstrapAdmin creates the reserved admin account if it does not exist yet.
func bootstrapAdmin(ctx context.Context, users repository.UserRepository, cfg *config.Config) error {
	_, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		log.Println("Admin user already exists")
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:         "Admin",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
		Address:      "Admin HQ",
		Pincode:      "000000",
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Println("Admin user created")
	return nil
}
