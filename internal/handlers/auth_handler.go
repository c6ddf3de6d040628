package handlers

import (
	"errors"
	"net/http"

	"github.com/eventsplace/server/internal/models"
	"github.com/eventsplace/server/internal/services"
	"github.com/gin-gonic/gin"
)

func ForgotPassword(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		if err := u.ForgotPassword(c.Request.Context(), req.Email); err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to send OTP."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent to your email."})
	}
}

func VerifyOTP(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
			OTP   string `json:"otp" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		err := u.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP verified successfully."})
		case errors.Is(err, models.ErrOTPNotSent):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP has expired or was never sent."})
		case errors.Is(err, models.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid OTP."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to verify OTP."})
		}
	}
}

func ResetPassword(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email       string `json:"email" binding:"required,email"`
			NewPassword string `json:"newPassword" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "New password is required."})
			return
		}

		err := u.ResetPassword(c.Request.Context(), req.Email, req.NewPassword)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully."})
		case errors.Is(err, models.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
		case errors.Is(err, models.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to reset password."})
		}
	}
}
