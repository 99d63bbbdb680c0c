package models

import "time"

// Notification is an in-app message shown to a user, usually triggered by an
// order lifecycle change or an incoming SMS command.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	RelatedID *string   `json:"related_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateNotificationRequest is the internal payload for recording a
// notification. Services construct it directly; it is not bound from HTTP.
type CreateNotificationRequest struct {
	UserID    string
	Title     string
	Message   string
	Type      string
	RelatedID string
}
