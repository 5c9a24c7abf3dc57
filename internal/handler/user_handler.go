package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/auth"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/model"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/service"
)

// UserHandler handles the user endpoints: profile, booking, release, search.
type UserHandler struct {
	userService    service.UserService
	bookingService service.BookingService
	lotService     service.LotService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, bookingService service.BookingService, lotService service.LotService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		bookingService: bookingService,
		lotService:     lotService,
	}
}

// ProfileRequest represents a profile edit; only the name is mutable.
type ProfileRequest struct {
	Name string `json:"name" validate:"required"`
}

// BookRequest represents a spot booking request.
type BookRequest struct {
	VehicleNo string `json:"vehicle_no" validate:"required"`
}

// SearchRequest represents a lot search by location or pincode.
type SearchRequest struct {
	Location string `json:"location" validate:"required"`
}

// DashboardResponse is the user landing view: lots with availability plus the
// user's reservation history.
type DashboardResponse struct {
	Lots         []service.LotAvailability `json:"lots"`
	Reservations []model.Reservation       `json:"reservations"`
}

// Dashboard godoc
// @Summary User dashboard: lots with availability and own reservations
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponse
// @Router /user/dashboard [get]
func (h *UserHandler) Dashboard(c echo.Context) error {
	ac, err := auth.FromEcho(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	lots, err := h.lotService.Dashboard(ctx)
	if err != nil {
		return respondDomainError(err)
	}
	reservations, err := h.bookingService.History(ctx, ac.UserID)
	if err != nil {
		return respondDomainError(err)
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		Lots:         lots,
		Reservations: reservations,
	})
}

// GetProfile godoc
// @Summary View own profile
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Router /user/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	ac, err := auth.FromEcho(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetProfile(c.Request().Context(), ac.UserID)
	if err != nil {
		return respondDomainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Edit own profile (name only)
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileRequest true "Profile data"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /user/profile [post]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	ac, err := auth.FromEcho(c)
	if err != nil {
		return err
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateName(c.Request().Context(), ac.UserID, req.Name)
	if err != nil {
		return respondDomainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Book godoc
// @Summary Book the first available spot in a lot
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lot_id path int true "Lot ID"
// @Param request body BookRequest true "Vehicle number"
// @Success 201 {object} model.Reservation
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /book/{lot_id} [post]
func (h *UserHandler) Book(c echo.Context) error {
	ac, err := auth.FromEcho(c)
	if err != nil {
		return err
	}

	lotID, err := parseUintParam(c, "lot_id")
	if err != nil {
		return err
	}

	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reservation, err := h.bookingService.Book(c.Request().Context(), ac.UserID, lotID, req.VehicleNo)
	if err != nil {
		return respondDomainError(err)
	}
	return c.JSON(http.StatusCreated, reservation)
}

// Release godoc
// @Summary Release an open reservation and bill it
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} model.Reservation
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /release/{id} [post]
func (h *UserHandler) Release(c echo.Context) error {
	ac, err := auth.FromEcho(c)
	if err != nil {
		return err
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	reservation, err := h.bookingService.Release(c.Request().Context(), ac.UserID, id)
	if err != nil {
		return respondDomainError(err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// Search godoc
// @Summary Search lots by pincode or address substring
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SearchRequest true "Location or pincode"
// @Success 200 {array} service.LotAvailability
// @Failure 400 {object} errors.ErrorResponse
// @Router /user/search [post]
func (h *UserHandler) Search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	lots, err := h.bookingService.SearchByLocation(ctx, req.Location)
	if err != nil {
		return respondDomainError(err)
	}

	availability, err := h.lotService.AvailabilityFor(ctx, lots)
	if err != nil {
		return respondDomainError(err)
	}
	return c.JSON(http.StatusOK, availability)
}

// Summary godoc
// @Summary Own reservation history, newest first
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Reservation
// @Router /user/summary [get]
func (h *UserHandler) Summary(c echo.Context) error {
	ac, err := auth.FromEcho(c)
	if err != nil {
		return err
	}

	reservations, err := h.bookingService.History(c.Request().Context(), ac.UserID)
	if err != nil {
		return respondDomainError(err)
	}
	return c.JSON(http.StatusOK, reservations)
}
