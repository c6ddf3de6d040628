package handlers

import (
	"errors"
	"net/http"

	"github.com/eventsplace/server/internal/models"
	"github.com/eventsplace/server/internal/services"
	"github.com/gin-gonic/gin"
)

func CreateOrder(p *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Price float64 `json:"price" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		approvalURL, err := p.CreateOrder(c.Request.Context(), req.Price)
		if err != nil {
			if errors.Is(err, models.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, gin.H{"approvalUrl": approvalURL})
	}
}

func ExecutePayment(p *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			OrderID string `json:"orderID" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		message, err := p.ExecutePayment(c.Request.Context(), req.OrderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("An error occurred while capturing the payment."))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

// RecordPayment stores the durable payment record once the gateway has
// confirmed a capture.
func RecordPayment(p *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			VenueName       string  `json:"venueName" binding:"required"`
			Date            string  `json:"date" binding:"required"`
			EventType       string  `json:"eventType"`
			SelectedPackage string  `json:"selectedPackage"`
			Price           float64 `json:"price"`
			UserID          string  `json:"userID" binding:"required"`
			Username        string  `json:"username"`
			BookingID       string  `json:"bookingID" binding:"required"`
			DayFormat       string  `json:"dayFormat"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		date, err := models.ParseBookingDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		payment := &models.Payment{
			BookingID:       req.BookingID,
			VenueName:       req.VenueName,
			Date:            date,
			DayFormat:       models.DayFormat(req.DayFormat),
			EventType:       req.EventType,
			SelectedPackage: req.SelectedPackage,
			Price:           req.Price,
			UserID:          req.UserID,
			Username:        req.Username,
		}

		stored, err := p.RecordPayment(c.Request.Context(), payment)
		if err != nil {
			if errors.Is(err, models.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to store payment details."))
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":   true,
			"message":   "Payment stored successfully.",
			"paymentID": stored.PaymentID,
		})
	}
}

func GetUserPayments(p *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("userID")

		payments, err := p.ListUserPayments(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, models.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to fetch payments"))
			return
		}

		if len(payments) == 0 {
			c.JSON(http.StatusNotFound, models.ErrorResponse("No payments found for this user"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"payments": payments})
	}
}

// PaymentSuccess and PaymentCancelled are the landing pages the gateway
// redirects to after checkout.
func PaymentSuccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Payment successful. You can close this window.")
	}
}

func PaymentCancelled() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Payment was cancelled. You can close this window.")
	}
}
