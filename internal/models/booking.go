package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is one accepted reservation of a venue+date slot. BookingID is
// assigned from the booking sequence at insertion time and is immutable;
// cancellation deletes the record rather than mutating it.
type Booking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BookingID   string             `bson:"booking_id" json:"bookingID,omitempty"`
	VenueID     string             `bson:"venue_id" json:"venueID" validate:"required"`
	EventType   string             `bson:"event_type" json:"eventType"`
	UserID      string             `bson:"user_id" json:"userID" validate:"required"`
	UserName    string             `bson:"user_name" json:"userName"`
	BookingDate time.Time          `bson:"booking_date" json:"bookingDate"`
	DayFormat   DayFormat          `bson:"day_format" json:"dayFormat" validate:"required"`
	VenueName   string             `bson:"venue_name" json:"venueName"`
	VenuePrice  float64            `bson:"venue_price" json:"venuePrice"`
	Package     string             `bson:"package" json:"package"`
	TotalPrice  float64            `bson:"total_price" json:"totalPrice"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

func (b *Booking) BeforeCreate() error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	return nil
}

// BookingRepo is the reservation ledger. InsertIfAllowed is atomic per
// (venue, date) slot: the read-decide-allocate-insert sequence executes as
// an indivisible unit, so two concurrent inserts with mutually exclusive
// formats can never both succeed.
type BookingRepo interface {
	InsertIfAllowed(ctx context.Context, booking *Booking, policy SlotPolicy) (*Booking, error)
	FindByVenueDate(ctx context.Context, venueID string, date time.Time) ([]*Booking, error)
	DeleteByBookingID(ctx context.Context, bookingID string) (*Booking, error)
	FindByUser(ctx context.Context, userID string) ([]*Booking, error)
}

// DateSlot truncates t to its UTC calendar date. Two requests on the same
// date but different times land on the same slot.
func DateSlot(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseBookingDate accepts an ISO-8601 date ("2024-12-25") or a full
// RFC 3339 timestamp and normalizes it to the date slot.
func ParseBookingDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return DateSlot(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: booking date must be an ISO-8601 date", ErrInvalidInput)
}
