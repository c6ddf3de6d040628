package handlers

import (
	"errors"
	"net/http"

	"github.com/eventsplace/server/internal/models"
	"github.com/eventsplace/server/internal/services"
	"github.com/gin-gonic/gin"
)

// CreateBooking reserves a venue+date slot. A slot conflict is a normal
// outcome (success=false with the policy's reason), not an error status;
// an unreachable store is a 503 so the client knows to retry.
func CreateBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.BookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := b.CreateBooking(c.Request.Context(), &req)
		if err != nil {
			if conflict, ok := models.AsSlotConflict(err); ok {
				c.JSON(http.StatusOK, models.BookingResponse(false, conflict.Reason, ""))
				return
			}
			if errors.Is(err, models.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			if errors.Is(err, models.ErrStorageUnavailable) {
				c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Error creating booking"))
			return
		}

		c.JSON(http.StatusOK, models.BookingResponse(true, "Booking successful", booking.BookingID))
	}
}

func GetUserBookings(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("userID")

		bookings, err := b.ListUserBookings(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, models.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to fetch bookings"))
			return
		}

		if len(bookings) == 0 {
			c.JSON(http.StatusNotFound, models.ErrorResponse("No bookings found for this user"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
	}
}

func CancelBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID := c.Param("bookingID")

		_, err := b.CancelBooking(c.Request.Context(), bookingID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusOK, models.BookingResponse(false, "Booking not found.", ""))
				return
			}
			if errors.Is(err, models.ErrStorageUnavailable) {
				c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Error canceling booking."))
			return
		}

		c.JSON(http.StatusOK, models.BookingResponse(true, "Booking cancelled successfully.", ""))
	}
}

// CancelBookingWithPayment jointly removes the payment record and the
// booking, reporting partial outcomes instead of hiding them.
func CancelBookingWithPayment(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			BookingID string `json:"bookingID" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		outcome, err := b.CancelBookingWithPayment(c.Request.Context(), req.BookingID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, models.BookingResponse(false, "Booking not found.", ""))
				return
			}
			if outcome != nil && outcome.PaymentRemoved {
				c.JSON(http.StatusInternalServerError, models.BookingResponse(false, "Payment cancelled but booking removal failed.", ""))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Error canceling booking."))
			return
		}

		message := "Booking and payment cancelled successfully."
		if !outcome.PaymentRemoved {
			message = "Booking cancelled successfully. No payment was on file."
		}
		c.JSON(http.StatusOK, models.BookingResponse(true, message, ""))
	}
}
