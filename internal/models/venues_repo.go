package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) CreateVenue(ctx context.Context, venue *Venue) (*Venue, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, VenueColName)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	venue.CreatedAt = now
	venue.UpdatedAt = now
	if err := venue.BeforeCreate(); err != nil {
		return nil, err
	}

	if _, err := col.InsertOne(ctx, venue); err != nil {
		return nil, fmt.Errorf("%w: inserting venue: %v", ErrStorageUnavailable, err)
	}

	return venue, nil
}

func (mdb *MongodbRepo) GetVenueByID(ctx context.Context, id primitive.ObjectID) (*Venue, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, VenueColName)
	if err != nil {
		return nil, err
	}

	var venue Venue
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&venue); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding venue: %v", ErrStorageUnavailable, err)
	}

	return &venue, nil
}

// ListVenuesByEventType returns venues whose event_types array contains
// the given tag (Birthday, Pool, Party, Wedding).
func (mdb *MongodbRepo) ListVenuesByEventType(ctx context.Context, eventType string) ([]*Venue, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, VenueColName)
	if err != nil {
		return nil, err
	}

	cursor, err := col.Find(ctx, bson.M{"event_types": eventType})
	if err != nil {
		return nil, fmt.Errorf("%w: finding venues: %v", ErrStorageUnavailable, err)
	}
	defer cursor.Close(ctx)

	var venues []*Venue
	for cursor.Next(ctx) {
		var v Venue
		if err := cursor.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: decoding venue: %v", ErrStorageUnavailable, err)
		}
		venues = append(venues, &v)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: cursor error: %v", ErrStorageUnavailable, err)
	}

	return venues, nil
}

func (mdb *MongodbRepo) ListVenues(ctx context.Context, offset, limit int) ([]*Venue, int64, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, VenueColName)
	if err != nil {
		return nil, 0, err
	}

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: counting venues: %v", ErrStorageUnavailable, err)
	}

	opts := options.Find().SetSkip(int64(offset)).SetLimit(int64(limit))
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: finding venues: %v", ErrStorageUnavailable, err)
	}
	defer cursor.Close(ctx)

	var venues []*Venue
	for cursor.Next(ctx) {
		var v Venue
		if err := cursor.Decode(&v); err != nil {
			return nil, 0, fmt.Errorf("%w: decoding venue: %v", ErrStorageUnavailable, err)
		}
		venues = append(venues, &v)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: cursor error: %v", ErrStorageUnavailable, err)
	}

	return venues, total, nil
}
