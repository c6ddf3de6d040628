package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sequence names. Each name owns one counter document.
const (
	BookingSequence = "bookings"
	UserSequence    = "users"
)

type sequenceDoc struct {
	ID            string `bson:"_id"`
	SequenceValue int64  `bson:"sequence_value"`
}

// SequenceRepo allocates unique, strictly increasing integers from a named
// counter. Allocated values are never reused, even when the consuming
// record is later deleted.
type SequenceRepo interface {
	NextSequence(ctx context.Context, name string) (int64, error)
}

// NextSequence increments the named counter and returns the new value. The
// whole read-modify-write runs as a single atomic findOneAndUpdate on one
// document, so concurrent callers can never observe the same value. The
// counter is created on first use starting from 0.
func (mdb *MongodbRepo) NextSequence(ctx context.Context, name string) (int64, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, CountersColName)
	if err != nil {
		return 0, err
	}

	filter := bson.M{"_id": name}
	update := bson.M{"$inc": bson.M{"sequence_value": 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc sequenceDoc
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return 0, fmt.Errorf("%w: allocating %s sequence: %v", ErrStorageUnavailable, name, err)
	}

	return doc.SequenceValue, nil
}

// FormatSequenceID renders an allocated sequence number as a display ID
// ("01", "02", ... "100"). Pure formatting, outside the atomicity contract.
func FormatSequenceID(n int64) string {
	return fmt.Sprintf("%02d", n)
}
