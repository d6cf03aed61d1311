package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gytech/flightdesk/internal/domain"
	"github.com/gytech/flightdesk/internal/service/core"
)

// FlightUseCase is the slice of the core the flight handlers need.
type FlightUseCase interface {
	ListFlights(ctx context.Context) ([]domain.Flight, error)
	GetFlight(ctx context.Context, id string) (*domain.Flight, error)
	AddFlight(ctx context.Context, in core.AddFlightInput) error
	SetPrice(ctx context.Context, id string, price float64) error
	SetRemainingSeats(ctx context.Context, id string, remain int) error
	DeleteFlight(ctx context.Context, id string) error
	IsAdminLoggedIn() bool
}

type FlightHandler struct {
	service FlightUseCase
}

func NewFlightHandler(service FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.add)
	router.PATCH("/:id/price", h.setPrice)
	router.PATCH("/:id/seats", h.setSeats)
	router.DELETE("/:id", h.delete)
}

// requireAdmin gates inventory mutations on the back-office session.
func (h *FlightHandler) requireAdmin(c *gin.Context) bool {
	if !h.service.IsAdminLoggedIn() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "admin login required"})
		return false
	}
	return true
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.ListFlights(c.Request.Context())
	// A closed connection renders as an empty table; the failure itself is
	// reported on the event stream.
	if err != nil && !errors.Is(err, domain.ErrNotConnected) {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetFlight(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	if flight == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "flight " + c.Param("id") + " not found"})
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) add(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	var in core.AddFlightInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.service.AddFlight(c.Request.Context(), in); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": in.ID})
}

func (h *FlightHandler) setPrice(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	var body struct {
		Price float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.service.SetPrice(c.Request.Context(), c.Param("id"), body.Price); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FlightHandler) setSeats(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	var body struct {
		Remain int `json:"remain"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.service.SetRemainingSeats(c.Request.Context(), c.Param("id"), body.Remain); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FlightHandler) delete(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	if err := h.service.DeleteFlight(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
