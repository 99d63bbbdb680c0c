package notifications

import (
	"net/http"

	"agri-connect/internal/models"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for in-app notifications.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new notification handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(c echo.Context) error {
	userID := c.Get("userID").(string)

	notifications, err := h.svc.ListForUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Error("Handler.ListNotifications: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list notifications"})
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *Handler) UnreadCount(c echo.Context) error {
	userID := c.Get("userID").(string)

	count, err := h.svc.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Error("Handler.UnreadCount: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to count notifications"})
	}
	return c.JSON(http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) MarkRead(c echo.Context) error {
	userID := c.Get("userID").(string)

	if err := h.svc.MarkRead(c.Request().Context(), c.Param("notificationId"), userID); err != nil {
		c.Logger().Error("Handler.MarkRead: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to mark notification as read"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) MarkAllRead(c echo.Context) error {
	userID := c.Get("userID").(string)

	if err := h.svc.MarkAllRead(c.Request().Context(), userID); err != nil {
		c.Logger().Error("Handler.MarkAllRead: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to mark notifications as read"})
	}
	return c.NoContent(http.StatusNoContent)
}
