package sms

import (
	"fmt"
	"net/http"

	"agri-connect/internal/models"

	"github.com/labstack/echo/v4"
)

// Handler handles the SMS gateway webhook.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new SMS handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// Webhook receives inbound messages from the gateway and replies with TwiML.
// The gateway posts form-encoded From/Body fields.
func (h *Handler) Webhook(c echo.Context) error {
	var req models.IncomingSmsRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}
	if req.From == "" || req.Body == "" {
		return c.String(http.StatusBadRequest, "Missing From or Body")
	}

	reply, err := h.svc.HandleIncoming(c.Request().Context(), req.From, req.Body)
	if err != nil {
		c.Logger().Error("Handler.SmsWebhook: ", err)
		return c.String(http.StatusInternalServerError, "Failed to process message")
	}

	twiml := fmt.Sprintf("<Response><Message>%s</Message></Response>", reply)
	return c.Blob(http.StatusOK, "text/xml", []byte(twiml))
}
