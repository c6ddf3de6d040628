package handlers

import (
	"errors"
	"net/http"

	"github.com/eventsplace/server/internal/middleware"
	"github.com/eventsplace/server/internal/models"
	"github.com/eventsplace/server/internal/services"
	"github.com/gin-gonic/gin"
)

func CreateUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email       string `json:"email" binding:"required,email"`
			Username    string `json:"username" binding:"required"`
			PhoneNumber string `json:"phoneNumber" binding:"required"`
			Password    string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user := &models.User{
			Email:       req.Email,
			Username:    req.Username,
			PhoneNumber: req.PhoneNumber,
		}

		created, err := u.CreateUser(c.Request.Context(), user, req.Password)
		if err != nil {
			if errors.Is(err, models.ErrDuplicateUser) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email or Username is already registered"})
				return
			}
			if errors.Is(err, models.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully!",
			"userID":  created.UserID,
		})
	}
}

func AuthenticateUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "message": "invalid request payload"})
			return
		}

		user, token, err := u.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, models.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   token,
			"user": gin.H{
				"userID":      user.UserID,
				"username":    user.Username,
				"email":       user.Email,
				"phoneNumber": user.PhoneNumber,
				"profilePic":  user.ProfilePic,
			},
		})
	}
}

func GetProfile(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.UserClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := u.GetProfile(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"userID":      user.UserID,
			"username":    user.Username,
			"email":       user.Email,
			"phoneNumber": user.PhoneNumber,
			"profilePic":  user.ProfilePic,
			"qrCode":      user.QRCode,
		})
	}
}

func UpdateProfile(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CurrentEmail string  `json:"currentEmail" binding:"required,email"`
			NewEmail     *string `json:"newEmail"`
			Username     *string `json:"username"`
			PhoneNumber  *string `json:"phoneNumber"`
			ProfilePic   *string `json:"profilePic"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := &models.ProfileUpdate{
			NewEmail:    req.NewEmail,
			Username:    req.Username,
			PhoneNumber: req.PhoneNumber,
			ProfilePic:  req.ProfilePic,
		}

		updated, err := u.UpdateProfile(c.Request.Context(), req.CurrentEmail, update)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			if errors.Is(err, models.ErrDuplicateUser) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email or Username is already taken"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated successfully",
			"user": gin.H{
				"userID":      updated.UserID,
				"email":       updated.Email,
				"username":    updated.Username,
				"phoneNumber": updated.PhoneNumber,
				"profilePic":  updated.ProfilePic,
			},
		})
	}
}
