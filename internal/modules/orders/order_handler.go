package orders

import (
	"net/http"

	"agri-connect/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate // For request body validation
}

// NewHandler creates a new order handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

func (h *Handler) Create(c echo.Context) error {
	buyerID := c.Get("userID").(string)

	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	order, err := h.svc.Create(c.Request().Context(), buyerID, req)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Product not found"})
		}
		if err == models.ErrInsufficientQuantity {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Insufficient quantity available"})
		}
		c.Logger().Error("Handler.CreateOrder: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create order"})
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListMyOrders(c echo.Context) error {
	userID := c.Get("userID").(string)
	role := c.Get("userRole").(string)

	orders, err := h.svc.ListForUser(c.Request().Context(), userID, role)
	if err != nil {
		c.Logger().Error("Handler.ListMyOrders: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve orders"})
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *Handler) Get(c echo.Context) error {
	order, err := h.svc.GetByID(c.Request().Context(), c.Param("orderId"))
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Order not found"})
		}
		c.Logger().Error("Handler.GetOrder: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve order"})
	}
	return c.JSON(http.StatusOK, order)
}

func (h *Handler) Update(c echo.Context) error {
	var req models.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	order, err := h.svc.Update(c.Request().Context(), c.Param("orderId"), req)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Order not found"})
		}
		c.Logger().Error("Handler.UpdateOrder: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update order"})
	}
	return c.JSON(http.StatusOK, order)
}
