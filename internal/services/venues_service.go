package services

import (
	"context"
	"fmt"

	"github.com/eventsplace/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VenuesService struct {
	venuesRepo models.VenuesRepo
}

func NewVenuesService(venuesRepo models.VenuesRepo) *VenuesService {
	return &VenuesService{
		venuesRepo: venuesRepo,
	}
}

func (vs *VenuesService) CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	if err := models.Validate.Struct(venue); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	return vs.venuesRepo.CreateVenue(ctx, venue)
}

func (vs *VenuesService) GetVenueByID(ctx context.Context, id string) (*models.Venue, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid venue ID", models.ErrInvalidInput)
	}
	return vs.venuesRepo.GetVenueByID(ctx, oid)
}

func (vs *VenuesService) ListVenuesByEventType(ctx context.Context, eventType string) ([]*models.Venue, error) {
	switch eventType {
	case models.EventBirthday, models.EventPool, models.EventParty, models.EventWedding:
		return vs.venuesRepo.ListVenuesByEventType(ctx, eventType)
	}
	return nil, fmt.Errorf("%w: unknown event type %q", models.ErrInvalidInput, eventType)
}

func (vs *VenuesService) ListVenues(ctx context.Context, offset, limit int) ([]*models.Venue, int64, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid offset or limit", models.ErrInvalidInput)
	}
	return vs.venuesRepo.ListVenues(ctx, offset, limit)
}
