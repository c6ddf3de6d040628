package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event types venues can be browsed by.
const (
	EventBirthday = "Birthday"
	EventPool     = "Pool"
	EventParty    = "Party"
	EventWedding  = "Wedding"
)

type Venue struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Location    string             `bson:"location" json:"location"`
	Description string             `bson:"description" json:"description"`
	EventTypes  []string           `bson:"event_types" json:"eventTypes" validate:"required,min=1"`
	Images      []string           `bson:"images" json:"images"`
	Price       float64            `bson:"price" json:"price" validate:"gte=0"`
	Packages    map[string]float64 `bson:"packages,omitempty" json:"packages,omitempty"`
	Capacity    int                `bson:"capacity" json:"capacity"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

func (v *Venue) BeforeCreate() error {
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	return nil
}

type VenuesRepo interface {
	CreateVenue(ctx context.Context, venue *Venue) (*Venue, error)
	GetVenueByID(ctx context.Context, id primitive.ObjectID) (*Venue, error)
	ListVenuesByEventType(ctx context.Context, eventType string) ([]*Venue, error)
	ListVenues(ctx context.Context, offset, limit int) ([]*Venue, int64, error)
}
