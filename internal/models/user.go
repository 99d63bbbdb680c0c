package models

import "time"

// User roles.
const (
	RoleFarmer    = "farmer"
	RoleBuyer     = "buyer"
	RoleLogistics = "logistics"
	RoleAdmin     = "admin"
)

// User represents a registered account: a farmer selling produce, a buyer,
// a logistics driver, or an admin. Location fields are optional and act as
// the fallback when a product or order record carries no coordinates.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	FullName     string    `json:"full_name"`
	LocationLat  *float64  `json:"location_lat,omitempty"`
	LocationLng  *float64  `json:"location_lng,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	FarmName     *string   `json:"farm_name,omitempty"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	Verified     bool      `json:"verified"`
	Rating       float64   `json:"rating"`
	RatingCount  int       `json:"rating_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=farmer buyer logistics"`
	FullName string `json:"full_name" validate:"required"`
	Address  string `json:"address,omitempty"`
}

// LoginRequest is the payload for email/password authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the authenticated user and a signed token pair.
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest is the payload for partial profile updates. Nil fields
// are left untouched.
type UpdateProfileRequest struct {
	FullName     *string  `json:"full_name,omitempty"`
	Email        *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string  `json:"phone,omitempty"`
	Address      *string  `json:"address,omitempty"`
	LocationLat  *float64 `json:"location_lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	LocationLng  *float64 `json:"location_lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Bio          *string  `json:"bio,omitempty"`
	FarmName     *string  `json:"farm_name,omitempty"`
	ProfileImage *string  `json:"profile_image,omitempty"`
}
