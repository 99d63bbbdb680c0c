package models

// Stop kinds. A pickup visits the farmer, a delivery visits the buyer.
const (
	StopTypePickup   = "pickup"
	StopTypeDelivery = "delivery"
)

// Stop is one visit in an optimized delivery route. Stops are derived fresh
// from current order data on every optimization call and are never persisted.
type Stop struct {
	ID      string      `json:"id"`
	Lat     float64     `json:"lat"`
	Lng     float64     `json:"lng"`
	Address string      `json:"address"`
	Type    string      `json:"type"`
	OrderID string      `json:"orderId"`
	Details StopDetails `json:"details"`
}

// StopDetails is the denormalized display payload attached to each stop.
// It is informational only and never affects the visitation order.
type StopDetails struct {
	ProductName   string  `json:"productName"`
	Quantity      float64 `json:"quantity"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	PaymentMethod string  `json:"paymentMethod"`
	PaymentStatus string  `json:"paymentStatus"`
	TotalPrice    float64 `json:"totalPrice"`
	Status        string  `json:"status"`
}
