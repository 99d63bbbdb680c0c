package models

import "time"

// SMS directions and delivery states as recorded in sms_logs.
const (
	SmsDirectionInbound  = "inbound"
	SmsDirectionOutbound = "outbound"

	SmsStatusSent     = "sent"
	SmsStatusReceived = "received"
)

// SmsLog is one logged SMS message, inbound or outbound.
type SmsLog struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone_number"`
	Message   string    `json:"message"`
	Direction string    `json:"direction"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// IncomingSmsRequest is the webhook payload posted by the SMS gateway.
// Twilio posts form-encoded fields with capitalized names.
type IncomingSmsRequest struct {
	From string `json:"From" form:"From" validate:"required"`
	Body string `json:"Body" form:"Body" validate:"required"`
}
