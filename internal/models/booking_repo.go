package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	slotLockAttempts = 5
	slotLockBackoff  = 100 * time.Millisecond
)

// slotLock is an advisory lock document. Its _id is the slot key, so a
// second InsertOne for the same slot fails with a duplicate-key error
// while the lock is held. A TTL index on created_at reaps locks left
// behind by crashed writers.
type slotLock struct {
	ID        string    `bson:"_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func slotKey(venueID string, date time.Time) string {
	return venueID + "|" + date.UTC().Format("2006-01-02")
}

func (mdb *MongodbRepo) acquireSlotLock(ctx context.Context, venueID string, date time.Time) (string, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, BookingLockColName)
	if err != nil {
		return "", err
	}

	key := slotKey(venueID, date)
	for attempt := 0; attempt < slotLockAttempts; attempt++ {
		_, err := col.InsertOne(ctx, slotLock{ID: key, CreatedAt: time.Now()})
		if err == nil {
			return key, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: acquiring slot lock: %v", ErrStorageUnavailable, err)
		}
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, ctx.Err())
		case <-time.After(slotLockBackoff):
		}
	}
	return "", fmt.Errorf("%w: slot %s is held by another writer", ErrStorageUnavailable, key)
}

func (mdb *MongodbRepo) releaseSlotLock(ctx context.Context, key string) error {
	col, err := mdb.GetCollection(ctx, DatabaseName, BookingLockColName)
	if err != nil {
		return err
	}
	_, err = col.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// InsertIfAllowed reads the day formats already booked for the candidate's
// venue+date, evaluates the slot policy against them, and on ALLOW
// allocates a booking ID and persists the candidate. The whole sequence
// runs under a per-slot advisory lock, so concurrent writers for the same
// slot are linearized; writers for other slots are unaffected. A rejected
// candidate leaves no state behind (the sequence is only touched after the
// policy allows, so rejects burn no IDs).
func (mdb *MongodbRepo) InsertIfAllowed(ctx context.Context, booking *Booking, policy SlotPolicy) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, BookingColName)
	if err != nil {
		return nil, err
	}

	lockKey, err := mdb.acquireSlotLock(ctx, booking.VenueID, booking.BookingDate)
	if err != nil {
		return nil, err
	}
	defer func() {
		// Release even when the caller's context is already cancelled.
		_ = mdb.releaseSlotLock(context.WithoutCancel(ctx), lockKey)
	}()

	existing, err := mdb.FindByVenueDate(ctx, booking.VenueID, booking.BookingDate)
	if err != nil {
		return nil, err
	}
	formats := make([]DayFormat, 0, len(existing))
	for _, b := range existing {
		formats = append(formats, b.DayFormat)
	}

	if decision := policy.Allows(formats, booking.DayFormat); !decision.Allowed {
		return nil, &SlotConflictError{Reason: decision.Reason}
	}

	seq, err := mdb.NextSequence(ctx, BookingSequence)
	if err != nil {
		return nil, err
	}
	booking.BookingID = FormatSequenceID(seq)

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if err := booking.BeforeCreate(); err != nil {
		return nil, err
	}

	if _, err := col.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Unique (venue, date, format) index backstop: a racing writer
			// committed the same format first. Report it as the conflict
			// the policy would have found.
			decision := policy.Allows([]DayFormat{booking.DayFormat}, booking.DayFormat)
			return nil, &SlotConflictError{Reason: decision.Reason}
		}
		return nil, fmt.Errorf("%w: inserting booking: %v", ErrStorageUnavailable, err)
	}

	return booking, nil
}

func (mdb *MongodbRepo) FindByVenueDate(ctx context.Context, venueID string, date time.Time) ([]*Booking, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, BookingColName)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"venue_id": venueID, "booking_date": DateSlot(date)}
	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: finding bookings: %v", ErrStorageUnavailable, err)
	}
	defer cursor.Close(ctx)

	var bookings []*Booking
	for cursor.Next(ctx) {
		var b Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("%w: decoding booking: %v", ErrStorageUnavailable, err)
		}
		bookings = append(bookings, &b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: cursor error: %v", ErrStorageUnavailable, err)
	}

	return bookings, nil
}

// DeleteByBookingID removes a booking and returns the deleted record.
// Deleting an unknown ID reports ErrNotFound; a second delete of the same
// ID therefore never looks like a second success.
func (mdb *MongodbRepo) DeleteByBookingID(ctx context.Context, bookingID string) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, BookingColName)
	if err != nil {
		return nil, err
	}

	var deleted Booking
	err = col.FindOneAndDelete(ctx, bson.M{"booking_id": bookingID}).Decode(&deleted)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: deleting booking: %v", ErrStorageUnavailable, err)
	}

	return &deleted, nil
}

func (mdb *MongodbRepo) FindByUser(ctx context.Context, userID string) ([]*Booking, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, BookingColName)
	if err != nil {
		return nil, err
	}

	cursor, err := col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("%w: finding user bookings: %v", ErrStorageUnavailable, err)
	}
	defer cursor.Close(ctx)

	var bookings []*Booking
	for cursor.Next(ctx) {
		var b Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("%w: decoding booking: %v", ErrStorageUnavailable, err)
		}
		bookings = append(bookings, &b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: cursor error: %v", ErrStorageUnavailable, err)
	}

	return bookings, nil
}
