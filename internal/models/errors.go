package models

import "errors"

var ErrNotFound = errors.New("requested resource not found")
var ErrForbidden = errors.New("user does not have permission to access this resource")
var ErrConflict = errors.New("resource conflict, item already exists")
var ErrInvalidToken = errors.New("token not found or expired")
var ErrInvalidCredentials = errors.New("invalid credentials") // email or password provided does not match database record

// ErrInsufficientQuantity indicates that an order asked for more units than
// the product currently has in stock.
var ErrInsufficientQuantity = errors.New("requested quantity exceeds available stock")

// ErrInvalidCoordinate flags malformed geographic data (NaN or outside the
// valid latitude/longitude ranges). It is a data-quality defect in the stored
// record, not a caller error.
var ErrInvalidCoordinate = errors.New("coordinate is not a number or out of range")

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}
