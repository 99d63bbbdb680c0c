package models

import "time"

// Order statuses. An order is "active" for routing purposes while it is
// pending, confirmed, in transit, or delivered but not yet completed.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusInTransit = "in_transit"
	OrderStatusDelivered = "delivered"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Payment methods and states.
const (
	PaymentMethodCOD          = "cod"
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Order represents a buyer's purchase of a single product. Delivery
// coordinates are optional; when absent the route optimizer falls back to the
// buyer's profile location.
type Order struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	ProductName     string    `json:"product_name,omitempty"`
	BuyerID         string    `json:"buyer_id"`
	Quantity        float64   `json:"quantity"`
	UnitPrice       float64   `json:"unit_price"`
	TotalPrice      float64   `json:"total_price"`
	Status          string    `json:"status"`
	PaymentMethod   string    `json:"payment_method"`
	PaymentStatus   string    `json:"payment_status"`
	DeliveryAddress *string   `json:"delivery_address,omitempty"`
	DeliveryLat     *float64  `json:"delivery_lat,omitempty"`
	DeliveryLng     *float64  `json:"delivery_lng,omitempty"`
	DeliveryDate    *string   `json:"delivery_date,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateOrderRequest is the payload for placing an order.
type CreateOrderRequest struct {
	ProductID       string   `json:"product_id" validate:"required"`
	Quantity        float64  `json:"quantity" validate:"required,gt=0"`
	PaymentMethod   string   `json:"payment_method" validate:"required,oneof=cod card bank_transfer"`
	PaymentMethodID string   `json:"payment_method_id,omitempty"`
	DeliveryAddress string   `json:"delivery_address,omitempty"`
	DeliveryLat     *float64 `json:"delivery_lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	DeliveryLng     *float64 `json:"delivery_lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// UpdateOrderRequest advances an order through its lifecycle.
type UpdateOrderRequest struct {
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed in_transit delivered completed cancelled"`
	PaymentStatus *string `json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid"`
}
