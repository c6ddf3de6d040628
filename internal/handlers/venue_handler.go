package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/eventsplace/server/internal/models"
	"github.com/eventsplace/server/internal/services"
	"github.com/gin-gonic/gin"
)

func ListVenuesByEventType(v *services.VenuesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventType := c.Param("eventType")

		venues, err := v.ListVenuesByEventType(c.Request.Context(), eventType)
		if err != nil {
			if errors.Is(err, models.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to fetch venues"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "venues": venues})
	}
}

func ListVenues(v *services.VenuesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

		venues, total, err := v.ListVenues(c.Request.Context(), offset, limit)
		if err != nil {
			if errors.Is(err, models.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to fetch venues"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "venues": venues, "total": total})
	}
}

func GetVenueByID(v *services.VenuesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		venue, err := v.GetVenueByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, models.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse("Venue not found"))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to fetch venue"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "venue": venue})
	}
}

func CreateVenue(v *services.VenuesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var venue models.Venue
		if err := c.ShouldBindJSON(&venue); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := v.CreateVenue(c.Request.Context(), &venue)
		if err != nil {
			if errors.Is(err, models.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to create venue"))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Venue created"))
	}
}
