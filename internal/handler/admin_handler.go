package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/model"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/service"
)

// AdminHandler handles the admin endpoints: lot lifecycle, listings, search.
type AdminHandler struct {
	lotService service.LotService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(lotService service.LotService) *AdminHandler {
	return &AdminHandler{lotService: lotService}
}

// LotRequest represents the create/edit parking lot form.
type LotRequest struct {
	Name         string          `json:"name" validate:"required"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	Address      string          `json:"address" validate:"required"`
	Pincode      string          `json:"pincode" validate:"required"`
	MaxSpots     int             `json:"max_spots" validate:"required"`
}

// SearchLotsResponse carries search results together with an error reason
// when the query could not be applied.
type SearchLotsResponse struct {
	Lots     []model.ParkingLot `json:"lots"`
	Error    string             `json:"error,omitempty"`
	SearchBy string             `json:"search_by"`
	Query    string             `json:"query"`
}

func (r LotRequest) toInput() service.LotInput {
	return service.LotInput{
		Name:         r.Name,
		PricePerHour: r.PricePerHour,
		Address:      r.Address,
		Pincode:      r.Pincode,
		MaxSpots:     r.MaxSpots,
	}
}

// Dashboard godoc
// @Summary Admin dashboard: all lots with available-spot counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.LotAvailability
// @Router /admin [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	lots, err := h.lotService.Dashboard(c.Request().Context())
	if err != nil {
		return respondDomainError(err)
	}
	return c.JSON(http.StatusOK, lots)
}

// CreateLot godoc
// @Summary Create a parking lot with its spots
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LotRequest true "Lot data"
// @Success 201 {object} model.ParkingLot
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/parking_lot/create [post]
func (h *AdminHandler) CreateLot(c echo.Context) error {
	var req LotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lot, err := h.lotService.CreateLot(c.Request().Context(), req.toInput())
	if err != nil {
		return respondDomainError(err)
	}
	return c.JSON(http.StatusCreated, lot)
}

// UpdateLot godoc
// @Summary Edit a parking lot, resizing its spot set when max_spots changes
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lot ID"
// @Param request body LotRequest true "Lot data"
// @Success 200 {object} model.ParkingLot
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/parking_lot/edit/{id} [post]
func (h *AdminHandler) UpdateLot(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var req LotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lot, err := h.lotService.UpdateLot(c.Request().Context(), id, req.toInput())
	if err != nil {
		return respondDomainError(err)
	}
	return c.JSON(http.StatusOK, lot)
}

// DeleteLot godoc
// @Summary Delete a lot that has no reservation history
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lot ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/lot/delete/{id} [post]
func (h *AdminHandler) DeleteLot(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.lotService.DeleteLot(c.Request().Context(), id); err != nil {
		return respondDomainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "lot deleted successfully",
	})
}

// GetLot godoc
// @Summary View a lot with one page of its spots
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lot ID"
// @Param page query int false "Page number (10 spots per page)"
// @Success 200 {object} service.LotDetail
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/parking_lot/{id} [get]
func (h *AdminHandler) GetLot(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if parsed, err := parsePositiveInt(raw); err == nil {
			page = parsed
		}
	}

	detail, err := h.lotService.GetLot(c.Request().Context(), id, page)
	if err != nil {
		return respondDomainError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

// GetSpot godoc
// @Summary View a spot, with a live cost estimate when occupied
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Spot ID"
// @Success 200 {object} service.SpotDetail
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/spot/{id} [get]
func (h *AdminHandler) GetSpot(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.lotService.GetSpot(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

// ListUsers godoc
// @Summary List all users with their reservations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.lotService.ListUsers(c.Request().Context())
	if err != nil {
		return respondDomainError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// ListReservations godoc
// @Summary List all reservations, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Reservation
// @Router /admin/reservations [get]
func (h *AdminHandler) ListReservations(c echo.Context) error {
	reservations, err := h.lotService.ListReservations(c.Request().Context())
	if err != nil {
		return respondDomainError(err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// SearchLots godoc
// @Summary Search lots by location, address, pincode or max price
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search_by query string true "One of: location, address, pincode, price"
// @Param query query string true "Search value"
// @Success 200 {object} SearchLotsResponse
// @Router /admin/search_lots [get]
func (h *AdminHandler) SearchLots(c echo.Context) error {
	searchBy := c.QueryParam("search_by")
	query := c.QueryParam("query")

	resp := SearchLotsResponse{
		Lots:     []model.ParkingLot{},
		SearchBy: searchBy,
		Query:    query,
	}

	if searchBy == "" || query == "" {
		resp.Error = "missing search parameters"
		return c.JSON(http.StatusOK, resp)
	}

	lots, err := h.lotService.SearchLots(c.Request().Context(), searchBy, query)
	switch err {
	case nil:
		resp.Lots = lots
	case service.ErrUnknownSearchFilter, service.ErrInvalidPriceQuery:
		// an unusable query yields an empty result with a reason, not a failure
		resp.Error = err.Error()
	default:
		return respondDomainError(err)
	}
	return c.JSON(http.StatusOK, resp)
}
