package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/auth"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/config"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/handler"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/refresh", authHandler.Refresh)
	api.POST("/logout", authHandler.Logout)

	// Secured routes: JWT verification, then the per-request auth context
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), auth.Middleware())

	// Admin routes
	admin := secured.Group("/admin", auth.RequireRole(model.RoleAdmin))
	admin.GET("", adminHandler.Dashboard)
	admin.POST("/parking_lot/create", adminHandler.CreateLot)
	admin.POST("/parking_lot/edit/:id", adminHandler.UpdateLot)
	admin.POST("/lot/delete/:id", adminHandler.DeleteLot)
	admin.GET("/parking_lot/:id", adminHandler.GetLot)
	admin.GET("/spot/:id", adminHandler.GetSpot)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/search_lots", adminHandler.SearchLots)
	admin.GET("/reservations", adminHandler.ListReservations)

	// User routes
	user := secured.Group("/user", auth.RequireRole(model.RoleUser))
	user.GET("/dashboard", userHandler.Dashboard)
	user.GET("/profile", userHandler.GetProfile)
	user.POST("/profile", userHandler.UpdateProfile)
	user.POST("/search", userHandler.Search)
	user.GET("/summary", userHandler.Summary)

	secured.POST("/book/:lot_id", userHandler.Book, auth.RequireRole(model.RoleUser))
	secured.POST("/release/:id", userHandler.Release, auth.RequireRole(model.RoleUser))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
