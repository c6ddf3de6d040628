package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (mdb *MongodbRepo) CreatePayment(ctx context.Context, payment *Payment) (*Payment, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, PaymentColName)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	if err := payment.BeforeCreate(); err != nil {
		return nil, err
	}

	if _, err := col.InsertOne(ctx, payment); err != nil {
		return nil, fmt.Errorf("%w: inserting payment: %v", ErrStorageUnavailable, err)
	}

	return payment, nil
}

func (mdb *MongodbRepo) FindPaymentsByUser(ctx context.Context, userID string) ([]*Payment, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, PaymentColName)
	if err != nil {
		return nil, err
	}

	cursor, err := col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("%w: finding payments: %v", ErrStorageUnavailable, err)
	}
	defer cursor.Close(ctx)

	var payments []*Payment
	for cursor.Next(ctx) {
		var p Payment
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("%w: decoding payment: %v", ErrStorageUnavailable, err)
		}
		payments = append(payments, &p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: cursor error: %v", ErrStorageUnavailable, err)
	}

	return payments, nil
}

func (mdb *MongodbRepo) DeletePaymentByBookingID(ctx context.Context, bookingID string) (*Payment, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, PaymentColName)
	if err != nil {
		return nil, err
	}

	var deleted Payment
	err = col.FindOneAndDelete(ctx, bson.M{"booking_id": bookingID}).Decode(&deleted)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: deleting payment: %v", ErrStorageUnavailable, err)
	}

	return &deleted, nil
}

func (mdb *MongodbRepo) CreateOrder(ctx context.Context, order *Order) (*Order, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, OrderColName)
	if err != nil {
		return nil, err
	}

	order.CreatedAt = time.Now()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}

	if _, err := col.InsertOne(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: inserting order: %v", ErrStorageUnavailable, err)
	}

	return order, nil
}

func (mdb *MongodbRepo) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	col, err := mdb.GetCollection(ctx, DatabaseName, OrderColName)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"status": status}}
	if _, err := col.UpdateOne(ctx, bson.M{"order_id": orderID}, update); err != nil {
		return fmt.Errorf("%w: updating order status: %v", ErrStorageUnavailable, err)
	}
	return nil
}
