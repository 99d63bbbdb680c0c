package models

import "time"

// Product statuses.
const (
	ProductStatusAvailable = "available"
	ProductStatusSold      = "sold"
	ProductStatusReserved  = "reserved"
)

// Product is a produce listing owned by a farmer. Coordinates are optional;
// when absent the route optimizer falls back to the farmer's profile location.
type Product struct {
	ID           string    `json:"id"`
	FarmerID     string    `json:"farmer_id"`
	FarmerName   string    `json:"farmer_name,omitempty"`
	Name         string    `json:"name"`
	Category     *string   `json:"category,omitempty"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	BasePrice    float64   `json:"base_price"`
	CurrentPrice float64   `json:"current_price"`
	HarvestDate  *string   `json:"harvest_date,omitempty"`
	ExpiryDate   *string   `json:"expiry_date,omitempty"`
	LocationLat  *float64  `json:"location_lat,omitempty"`
	LocationLng  *float64  `json:"location_lng,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Images       []string  `json:"images"`
	Description  *string   `json:"description,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateProductRequest is the payload for listing a new product.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Category    *string  `json:"category,omitempty"`
	Quantity    float64  `json:"quantity" validate:"required,gt=0"`
	Unit        string   `json:"unit" validate:"required"`
	BasePrice   float64  `json:"base_price" validate:"required,gt=0"`
	HarvestDate *string  `json:"harvest_date,omitempty"`
	ExpiryDate  *string  `json:"expiry_date,omitempty"`
	LocationLat *float64 `json:"location_lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	LocationLng *float64 `json:"location_lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Address     *string  `json:"address,omitempty"`
	Description *string  `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// UpdateProductRequest is the payload for partial listing updates.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Unit        *string  `json:"unit,omitempty"`
	HarvestDate *string  `json:"harvest_date,omitempty"`
	ExpiryDate  *string  `json:"expiry_date,omitempty"`
	LocationLat *float64 `json:"location_lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	LocationLng *float64 `json:"location_lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Address     *string  `json:"address,omitempty"`
	Description *string  `json:"description,omitempty"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=available sold reserved"`
}

// UpdatePriceRequest adjusts a product's pricing. Base and current price move
// together so the fluctuation engine keeps a sane reference point.
type UpdatePriceRequest struct {
	BasePrice    float64 `json:"base_price" validate:"required,gt=0"`
	CurrentPrice float64 `json:"current_price" validate:"required,gt=0"`
}

// ProductFilters narrows a product listing query.
type ProductFilters struct {
	Category string
	FarmerID string
	Status   string
	Search   string
}

// PriceChange is one row of price history recorded by the pricing engine.
type PriceChange struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	OldPrice   float64   `json:"old_price"`
	NewPrice   float64   `json:"new_price"`
	RecordedAt time.Time `json:"recorded_at"`
}
