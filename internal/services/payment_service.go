package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eventsplace/server/internal/helpers"
	"github.com/eventsplace/server/internal/models"
	"github.com/google/uuid"
	"github.com/plutov/paypal/v4"
)

const orderCurrency = "PHP"

// PaymentGateway is the slice of the PayPal client the service uses.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, intent string, purchaseUnits []paypal.PurchaseUnitRequest, payer *paypal.CreateOrderPayer, appContext *paypal.ApplicationContext) (*paypal.Order, error)
	GetOrder(ctx context.Context, orderID string) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string, captureOrderRequest paypal.CaptureOrderRequest) (*paypal.CaptureOrderResponse, error)
}

type PaymentService struct {
	payments  models.PaymentRepo
	orders    models.OrderRepo
	gateway   PaymentGateway
	returnURL string
	cancelURL string
	logger    *slog.Logger
}

func NewPaymentService(payments models.PaymentRepo, orders models.OrderRepo, gateway PaymentGateway, returnURL, cancelURL string, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		payments:  payments,
		orders:    orders,
		gateway:   gateway,
		returnURL: returnURL,
		cancelURL: cancelURL,
		logger:    logger,
	}
}

// CreateOrder opens a payment-gateway order for the given amount, records
// it as CREATED and returns the approval URL the client must visit.
func (ps *PaymentService) CreateOrder(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", fmt.Errorf("%w: price must be positive", models.ErrInvalidInput)
	}

	units := []paypal.PurchaseUnitRequest{
		{
			Amount: &paypal.PurchaseUnitAmount{
				Currency: orderCurrency,
				Value:    fmt.Sprintf("%.2f", price),
			},
		},
	}
	appCtx := &paypal.ApplicationContext{
		ReturnURL: ps.returnURL,
		CancelURL: ps.cancelURL,
	}

	order, err := ps.gateway.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, appCtx)
	if err != nil {
		return "", fmt.Errorf("failed to create order: %v", err)
	}

	var approvalURL string
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approvalURL = link.Href
			break
		}
	}
	if approvalURL == "" {
		return "", errors.New("approval link not found")
	}

	if _, err := ps.orders.CreateOrder(ctx, &models.Order{
		OrderID: order.ID,
		Status:  "CREATED",
		Amount:  price,
	}); err != nil {
		return "", err
	}

	ps.logger.Info("Payment order created", "order_id", order.ID, "amount", price)
	return approvalURL, nil
}

// ExecutePayment captures an approved order. Capturing an order that is
// already COMPLETED is reported as captured, not as an error, so the
// operation can be retried safely.
func (ps *PaymentService) ExecutePayment(ctx context.Context, orderID string) (string, error) {
	if orderID == "" {
		return "", fmt.Errorf("%w: order ID is required", models.ErrInvalidInput)
	}

	order, err := ps.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch order: %v", err)
	}
	if order.Status == "COMPLETED" {
		return "Order already captured.", nil
	}

	capture, err := ps.gateway.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		return "", fmt.Errorf("failed to capture payment: %v", err)
	}
	if capture.Status != "COMPLETED" {
		return "", fmt.Errorf("failed to capture payment: order status %s", capture.Status)
	}

	if err := ps.orders.UpdateOrderStatus(ctx, orderID, "CAPTURED"); err != nil {
		ps.logger.Error("Captured payment but failed to update order record", "order_id", orderID, "error", err)
	}

	ps.logger.Info("Payment captured", "order_id", orderID)
	return "Payment captured successfully.", nil
}

// RecordPayment persists the durable payment record for a booking, with a
// QR code encoding the payment details.
func (ps *PaymentService) RecordPayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if err := models.Validate.Struct(payment); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	payment.PaymentID = uuid.New().String()
	payment.PaymentStatus = models.PaymentPaid

	qrData := fmt.Sprintf("PaymentID: %s, Venue: %s, Date: %s, Day: %s",
		payment.PaymentID, payment.VenueName, payment.Date.Format("2006-01-02"), payment.DayFormat)
	qr, err := helpers.QRCodeDataURL(qrData)
	if err != nil {
		return nil, err
	}
	payment.QRCode = qr

	return ps.payments.CreatePayment(ctx, payment)
}

func (ps *PaymentService) ListUserPayments(ctx context.Context, userID string) ([]*models.Payment, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", models.ErrInvalidInput)
	}
	return ps.payments.FindPaymentsByUser(ctx, userID)
}
