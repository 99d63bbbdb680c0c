package routes

import (
	"net/http"

	"agri-connect/internal/models"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for route optimization.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new route handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// Optimize returns the ordered stop list for the calling driver.
func (h *Handler) Optimize(c echo.Context) error {
	driverID := c.Get("userID").(string)

	route, err := h.svc.OptimizeRoute(c.Request().Context(), driverID)
	if err != nil {
		c.Logger().Error("Handler.OptimizeRoute: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to optimize route"})
	}
	return c.JSON(http.StatusOK, route)
}
