package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "Paid"
	PaymentFailed PaymentStatus = "Failed"
)

// Payment is the durable record of a paid booking, keyed by bookingID. It
// is managed by the payment orchestration and consulted by the booking
// core only for best-effort joint cancellation.
type Payment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PaymentID       string             `bson:"payment_id" json:"paymentID"`
	BookingID       string             `bson:"booking_id" json:"bookingID" validate:"required"`
	QRCode          string             `bson:"qrcode,omitempty" json:"qrcode,omitempty"`
	VenueName       string             `bson:"venue_name" json:"venueName" validate:"required"`
	Date            time.Time          `bson:"date" json:"date"`
	DayFormat       DayFormat          `bson:"day_format" json:"dayFormat"`
	EventType       string             `bson:"event_type" json:"eventType"`
	SelectedPackage string             `bson:"selected_package" json:"selectedPackage"`
	Price           float64            `bson:"price" json:"price"`
	UserID          string             `bson:"user_id" json:"userID" validate:"required"`
	Username        string             `bson:"username" json:"username"`
	PaymentStatus   PaymentStatus      `bson:"payment_status" json:"paymentStatus"`
	CreatedAt       time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt       time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

func (p *Payment) BeforeCreate() error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	return nil
}

// Order tracks a payment-gateway order through its lifecycle
// (CREATED, CAPTURED, ...).
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderID   string             `bson:"order_id" json:"orderID"`
	Status    string             `bson:"status" json:"status"`
	Amount    float64            `bson:"amount" json:"amount"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

type PaymentRepo interface {
	CreatePayment(ctx context.Context, payment *Payment) (*Payment, error)
	FindPaymentsByUser(ctx context.Context, userID string) ([]*Payment, error)
	DeletePaymentByBookingID(ctx context.Context, bookingID string) (*Payment, error)
}

type OrderRepo interface {
	CreateOrder(ctx context.Context, order *Order) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
}
