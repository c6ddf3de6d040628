package models

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Validate = validator.New()

const (
	DatabaseName = "eventsplace"

	BookingColName     = "bookings"
	BookingLockColName = "booking_locks"
	CountersColName    = "counters"
	PaymentColName     = "payments"
	OrderColName       = "orders"
	UserColName        = "users"
	VenueColName       = "venues"
)

type MongodbRepo struct {
	mongodbClient *mongo.Client
}

func MongodbNewRepo(mongodbClient *mongo.Client) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
	}
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, dbName, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("%w: mongodb client is not initialized", ErrStorageUnavailable)
	}
	return mdb.mongodbClient.Database(dbName).Collection(colName), nil
}

// EnsureIndexes creates the indexes the booking core relies on:
//   - a unique (venue_id, booking_date, day_format) index on bookings, the
//     backstop that turns a racing same-format insert into a reported
//     conflict instead of a silent double booking
//   - a unique booking_id index
//   - a TTL index reaping slot locks left behind by crashed writers
//   - unique email and username indexes on users
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	bookings, err := mdb.GetCollection(ctx, DatabaseName, BookingColName)
	if err != nil {
		return err
	}
	_, err = bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "venue_id", Value: 1},
				{Key: "booking_date", Value: 1},
				{Key: "day_format", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %v", err)
	}

	locks, err := mdb.GetCollection(ctx, DatabaseName, BookingLockColName)
	if err != nil {
		return err
	}
	_, err = locks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(30),
	})
	if err != nil {
		return fmt.Errorf("failed to create lock TTL index: %v", err)
	}

	users, err := mdb.GetCollection(ctx, DatabaseName, UserColName)
	if err != nil {
		return err
	}
	_, err = users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	payments, err := mdb.GetCollection(ctx, DatabaseName, PaymentColName)
	if err != nil {
		return err
	}
	_, err = payments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "booking_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create payment indexes: %v", err)
	}

	return nil
}
