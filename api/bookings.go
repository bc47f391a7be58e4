package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/pawcare/internal/domain"
	"github.com/Domenick1991/pawcare/internal/middleware"
	"github.com/Domenick1991/pawcare/internal/repository"
	"github.com/Domenick1991/pawcare/internal/service/booking"
	"github.com/gin-gonic/gin"
)

const (
	errCreateFailed    = "Failed to create booking"
	errBookingNotFound = "Booking not found"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type updateStatusRequest struct {
	Status domain.BookingStatus `json:"status"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.PATCH("/:id/status", h.updateStatus)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req booking.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errCreateFailed})
		return
	}
	if req.CustomerID == "" {
		if userID, ok := middleware.UserID(c); ok {
			req.CustomerID = userID
		}
	}

	created, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		var missing *booking.MissingFieldError
		if errors.As(err, &missing) {
			c.JSON(http.StatusBadRequest, gin.H{"error": missing.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errCreateFailed})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": created})
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context(), booking.BookingFilter{
		ProviderID: c.Query("providerId"),
		CustomerID: c.Query("customerId"),
	})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errBookingNotFound})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ok, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status: " + string(req.Status)})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errBookingNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
