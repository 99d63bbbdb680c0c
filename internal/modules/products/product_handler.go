package products

import (
	"net/http"

	"agri-connect/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for product listings.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new product handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

func (h *Handler) Create(c echo.Context) error {
	farmerID := c.Get("userID").(string)

	var req models.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	product, err := h.svc.Create(c.Request().Context(), farmerID, req)
	if err != nil {
		c.Logger().Error("Handler.CreateProduct: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create product"})
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *Handler) List(c echo.Context) error {
	filters := models.ProductFilters{
		Category: c.QueryParam("category"),
		FarmerID: c.QueryParam("farmer_id"),
		Status:   c.QueryParam("status"),
		Search:   c.QueryParam("search"),
	}

	products, err := h.svc.List(c.Request().Context(), filters)
	if err != nil {
		c.Logger().Error("Handler.ListProducts: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list products"})
	}
	return c.JSON(http.StatusOK, products)
}

func (h *Handler) Get(c echo.Context) error {
	product, err := h.svc.GetByID(c.Request().Context(), c.Param("productId"))
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Product not found"})
		}
		c.Logger().Error("Handler.GetProduct: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve product"})
	}
	return c.JSON(http.StatusOK, product)
}

func (h *Handler) Update(c echo.Context) error {
	userID := c.Get("userID").(string)

	var req models.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	product, err := h.svc.Update(c.Request().Context(), c.Param("productId"), userID, req)
	if err != nil {
		return h.mapProductError(c, err, "Failed to update product")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *Handler) UpdatePrice(c echo.Context) error {
	userID := c.Get("userID").(string)

	var req models.UpdatePriceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	product, err := h.svc.UpdatePrice(c.Request().Context(), c.Param("productId"), userID, req)
	if err != nil {
		return h.mapProductError(c, err, "Failed to update price")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *Handler) Delete(c echo.Context) error {
	userID := c.Get("userID").(string)

	if err := h.svc.Delete(c.Request().Context(), c.Param("productId"), userID); err != nil {
		return h.mapProductError(c, err, "Failed to delete product")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) mapProductError(c echo.Context, err error, fallback string) error {
	if err == models.ErrNotFound {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Product not found"})
	}
	if err == models.ErrForbidden {
		return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "You do not own this product"})
	}
	c.Logger().Error("Handler.Product: ", err)
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: fallback})
}
