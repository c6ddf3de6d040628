package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eventsplace/server/internal/models"
)

// BookingRequest is the boundary record the HTTP layer hands to the
// booking core. DayFormat must be one of the four recognized values;
// anything else is rejected before any store access.
type BookingRequest struct {
	VenueID     string  `json:"venueID" validate:"required"`
	EventType   string  `json:"eventType"`
	UserID      string  `json:"userID" validate:"required"`
	UserName    string  `json:"userName"`
	BookingDate string  `json:"bookingDate" validate:"required"`
	DayFormat   string  `json:"dayFormat" validate:"required,oneof='Whole Day' 'Day' 'Night' 'Overnight'"`
	VenueName   string  `json:"venueName"`
	VenuePrice  float64 `json:"venuePrice"`
	Package     string  `json:"package"`
	TotalPrice  float64 `json:"totalPrice"`
}

// CancelOutcome reports the result of a joint payment+booking
// cancellation. Partial failure is reported, never hidden.
type CancelOutcome struct {
	BookingRemoved bool
	PaymentRemoved bool
}

type BookingService struct {
	bookings models.BookingRepo
	payments models.PaymentRepo
	policy   models.SlotPolicy
	logger   *slog.Logger
}

func NewBookingService(bookings models.BookingRepo, payments models.PaymentRepo, logger *slog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		payments: payments,
		policy:   models.DayFormatPolicy{},
		logger:   logger,
	}
}

// CreateBooking validates the request, then delegates to the ledger's
// atomic check-then-insert. On acceptance the returned booking carries
// its freshly allocated display ID. A slot conflict comes back as a
// *models.SlotConflictError value; the service never fabricates an ID
// when the store is unreachable.
func (bs *BookingService) CreateBooking(ctx context.Context, req *BookingRequest) (*models.Booking, error) {
	if err := models.Validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	date, err := models.ParseBookingDate(req.BookingDate)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		VenueID:     req.VenueID,
		EventType:   req.EventType,
		UserID:      req.UserID,
		UserName:    req.UserName,
		BookingDate: date,
		DayFormat:   models.DayFormat(req.DayFormat),
		VenueName:   req.VenueName,
		VenuePrice:  req.VenuePrice,
		Package:     req.Package,
		TotalPrice:  req.TotalPrice,
	}

	created, err := bs.bookings.InsertIfAllowed(ctx, booking, bs.policy)
	if err != nil {
		if conflict, ok := models.AsSlotConflict(err); ok {
			bs.logger.Info("Booking rejected",
				"venue_id", req.VenueID,
				"booking_date", req.BookingDate,
				"day_format", req.DayFormat,
				"reason", conflict.Reason,
			)
		}
		return nil, err
	}

	bs.logger.Info("Booking created",
		"booking_id", created.BookingID,
		"venue_id", created.VenueID,
		"booking_date", created.BookingDate,
		"day_format", created.DayFormat,
	)
	return created, nil
}

// CancelBooking deletes the reservation. A second cancel of the same ID
// reports models.ErrNotFound.
func (bs *BookingService) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("%w: booking ID is required", models.ErrInvalidInput)
	}
	return bs.bookings.DeleteByBookingID(ctx, bookingID)
}

// CancelBookingWithPayment removes the payment record and the booking in
// a best-effort, order-independent fashion: a missing payment does not
// stop the booking from being cancelled and vice versa. The outcome says
// exactly what was removed; storage failures still abort.
func (bs *BookingService) CancelBookingWithPayment(ctx context.Context, bookingID string) (*CancelOutcome, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("%w: booking ID is required", models.ErrInvalidInput)
	}

	outcome := &CancelOutcome{}

	_, err := bs.payments.DeletePaymentByBookingID(ctx, bookingID)
	switch {
	case err == nil:
		outcome.PaymentRemoved = true
	case errors.Is(err, models.ErrNotFound):
		// No payment on file; keep going.
	default:
		return nil, err
	}

	_, err = bs.bookings.DeleteByBookingID(ctx, bookingID)
	switch {
	case err == nil:
		outcome.BookingRemoved = true
	case errors.Is(err, models.ErrNotFound):
		if !outcome.PaymentRemoved {
			return nil, models.ErrNotFound
		}
	default:
		if outcome.PaymentRemoved {
			bs.logger.Error("Payment removed but booking deletion failed",
				"booking_id", bookingID,
				"error", err,
			)
		}
		return outcome, err
	}

	return outcome, nil
}

func (bs *BookingService) ListUserBookings(ctx context.Context, userID string) ([]*models.Booking, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", models.ErrInvalidInput)
	}
	return bs.bookings.FindByUser(ctx, userID)
}
