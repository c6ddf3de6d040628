package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/eventsplace/server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memLedger is an in-memory BookingRepo honoring the same contract as the
// Mongo implementation: the read-decide-allocate-insert sequence runs
// atomically per slot, and the sequence counter never hands out the same
// value twice.
type memLedger struct {
	mu       sync.Mutex
	seq      int64
	bookings []*models.Booking
	inserts  int
}

func (m *memLedger) InsertIfAllowed(ctx context.Context, booking *models.Booking, policy models.SlotPolicy) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inserts++

	var formats []models.DayFormat
	for _, b := range m.bookings {
		if b.VenueID == booking.VenueID && b.BookingDate.Equal(booking.BookingDate) {
			formats = append(formats, b.DayFormat)
		}
	}

	if decision := policy.Allows(formats, booking.DayFormat); !decision.Allowed {
		return nil, &models.SlotConflictError{Reason: decision.Reason}
	}

	m.seq++
	booking.BookingID = models.FormatSequenceID(m.seq)
	m.bookings = append(m.bookings, booking)
	return booking, nil
}

func (m *memLedger) FindByVenueDate(ctx context.Context, venueID string, date time.Time) ([]*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*models.Booking
	for _, b := range m.bookings {
		if b.VenueID == venueID && b.BookingDate.Equal(models.DateSlot(date)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memLedger) DeleteByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, b := range m.bookings {
		if b.BookingID == bookingID {
			m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
			return b, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memLedger) FindByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*models.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type memPayments struct {
	mu       sync.Mutex
	payments map[string]*models.Payment
}

func newMemPayments() *memPayments {
	return &memPayments{payments: make(map[string]*models.Payment)}
}

func (m *memPayments) CreatePayment(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[p.BookingID] = p
	return p, nil
}

func (m *memPayments) FindPaymentsByUser(ctx context.Context, userID string) ([]*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Payment
	for _, p := range m.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPayments) DeletePaymentByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[bookingID]
	if !ok {
		return nil, models.ErrNotFound
	}
	delete(m.payments, bookingID)
	return p, nil
}

func newTestBookingService() (*BookingService, *memLedger, *memPayments) {
	ledger := &memLedger{}
	payments := newMemPayments()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewBookingService(ledger, payments, logger), ledger, payments
}

func bookingRequest(venueID, dayFormat string) *BookingRequest {
	return &BookingRequest{
		VenueID:     venueID,
		EventType:   "Birthday",
		UserID:      "07",
		UserName:    "maria",
		BookingDate: "2024-12-25",
		DayFormat:   dayFormat,
		VenueName:   "Garden Pavilion",
		VenuePrice:  15000,
		Package:     "Standard",
		TotalPrice:  18500,
	}
}

func TestCreateBookingScenario(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, bookingRequest("V1", "Day"))
	require.NoError(t, err)
	assert.Equal(t, "01", first.BookingID)

	second, err := svc.CreateBooking(ctx, bookingRequest("V1", "Night"))
	require.NoError(t, err)
	assert.Equal(t, "02", second.BookingID)

	_, err = svc.CreateBooking(ctx, bookingRequest("V1", "Whole Day"))
	conflict, ok := models.AsSlotConflict(err)
	require.True(t, ok, "Whole Day over Day+Night must conflict")
	assert.Equal(t, models.ReasonWholeDayTaken, conflict.Reason)

	_, err = svc.CreateBooking(ctx, bookingRequest("V1", "Day"))
	conflict, ok = models.AsSlotConflict(err)
	require.True(t, ok, "second Day must conflict")
	assert.Equal(t, models.ReasonDayTaken, conflict.Reason)
}

func TestCancelFreesOnlyItsFormat(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, bookingRequest("V1", "Day"))
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, bookingRequest("V1", "Night"))
	require.NoError(t, err)

	_, err = svc.CancelBooking(ctx, first.BookingID)
	require.NoError(t, err)

	// Night from "02" remains, so Whole Day must still conflict.
	_, err = svc.CreateBooking(ctx, bookingRequest("V1", "Whole Day"))
	_, ok := models.AsSlotConflict(err)
	assert.True(t, ok, "Whole Day must still conflict with the remaining Night booking")

	// The freed Day slot can be rebooked.
	rebooked, err := svc.CreateBooking(ctx, bookingRequest("V1", "Day"))
	require.NoError(t, err)
	assert.Equal(t, "03", rebooked.BookingID, "cancelled IDs are never reused")
}

func TestCancelBookingIdempotence(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, bookingRequest("V1", "Day"))
	require.NoError(t, err)

	_, err = svc.CancelBooking(ctx, created.BookingID)
	require.NoError(t, err)

	_, err = svc.CancelBooking(ctx, created.BookingID)
	assert.ErrorIs(t, err, models.ErrNotFound, "second cancel must report NotFound, never a second success")
}

func TestCreateBookingMutualExclusion(t *testing.T) {
	for i := 0; i < 20; i++ {
		svc, _, _ := newTestBookingService()
		ctx := context.Background()

		results := make(chan error, 2)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(ctx, bookingRequest("V1", "Whole Day"))
			results <- err
		}()
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(ctx, bookingRequest("V1", "Day"))
			results <- err
		}()
		wg.Wait()
		close(results)

		var successes, conflicts int
		for err := range results {
			if err == nil {
				successes++
			} else if _, ok := models.AsSlotConflict(err); ok {
				conflicts++
			} else {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		require.Equal(t, 1, successes, "exactly one concurrent writer must win")
		require.Equal(t, 1, conflicts, "the loser must see a conflict, not a silent success")
	}
}

func TestBookingIDUniquenessUnderConcurrency(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	const n = 50
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			booking, err := svc.CreateBooking(ctx, bookingRequest(fmt.Sprintf("V%d", i), "Day"))
			if err != nil {
				t.Errorf("booking on its own venue should not fail: %v", err)
				return
			}
			ids <- booking.BookingID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate booking ID %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestBookingNonInterference(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, bookingRequest("V1", "Whole Day"))
	require.NoError(t, err)

	// Same date, different venue.
	_, err = svc.CreateBooking(ctx, bookingRequest("V2", "Whole Day"))
	assert.NoError(t, err, "another venue must not be affected")

	// Same venue, different date.
	other := bookingRequest("V1", "Whole Day")
	other.BookingDate = "2024-12-26"
	_, err = svc.CreateBooking(ctx, other)
	assert.NoError(t, err, "another date must not be affected")
}

func TestCreateBookingRejectsUnknownFormat(t *testing.T) {
	svc, ledger, _ := newTestBookingService()

	_, err := svc.CreateBooking(context.Background(), bookingRequest("V1", "Brunch"))
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Zero(t, ledger.inserts, "validation failures must not reach the store")
}

func TestCreateBookingRejectsMissingFields(t *testing.T) {
	svc, ledger, _ := newTestBookingService()

	req := bookingRequest("V1", "Day")
	req.UserID = ""
	_, err := svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	req = bookingRequest("V1", "Day")
	req.BookingDate = "not-a-date"
	_, err = svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	assert.Zero(t, ledger.inserts)
}

func TestCancelBookingWithPayment(t *testing.T) {
	svc, _, payments := newTestBookingService()
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, bookingRequest("V1", "Day"))
	require.NoError(t, err)

	_, err = payments.CreatePayment(ctx, &models.Payment{BookingID: booking.BookingID, UserID: "07"})
	require.NoError(t, err)

	outcome, err := svc.CancelBookingWithPayment(ctx, booking.BookingID)
	require.NoError(t, err)
	assert.True(t, outcome.BookingRemoved)
	assert.True(t, outcome.PaymentRemoved)

	// Everything is gone; a repeat reports NotFound.
	_, err = svc.CancelBookingWithPayment(ctx, booking.BookingID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCancelBookingWithoutPaymentRecord(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, bookingRequest("V1", "Night"))
	require.NoError(t, err)

	outcome, err := svc.CancelBookingWithPayment(ctx, booking.BookingID)
	require.NoError(t, err)
	assert.True(t, outcome.BookingRemoved)
	assert.False(t, outcome.PaymentRemoved, "missing payment is reported, not invented")
}

func TestListUserBookings(t *testing.T) {
	svc, _, _ := newTestBookingService()
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, bookingRequest("V1", "Day"))
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, bookingRequest("V2", "Night"))
	require.NoError(t, err)

	bookings, err := svc.ListUserBookings(ctx, "07")
	require.NoError(t, err)
	assert.Len(t, bookings, 2)

	bookings, err = svc.ListUserBookings(ctx, "99")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}
