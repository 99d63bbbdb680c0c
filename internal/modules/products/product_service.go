package products

import (
	"context"
	"fmt"

	"agri-connect/internal/models"

	"github.com/google/uuid"
)

// ServiceInterface defines the contract for the product service.
type ServiceInterface interface {
	Create(ctx context.Context, farmerID string, req models.CreateProductRequest) (*models.Product, error)
	List(ctx context.Context, filters models.ProductFilters) ([]*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, id, userID string, req models.UpdateProductRequest) (*models.Product, error)
	UpdatePrice(ctx context.Context, id, userID string, req models.UpdatePriceRequest) (*models.Product, error)
	Delete(ctx context.Context, id, userID string) error
}

// Service implements the product service logic.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new product service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Create lists a new product owned by the calling farmer.
func (s *Service) Create(ctx context.Context, farmerID string, req models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		ID:           uuid.NewString(),
		FarmerID:     farmerID,
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		BasePrice:    req.BasePrice,
		CurrentPrice: req.BasePrice,
		HarvestDate:  req.HarvestDate,
		ExpiryDate:   req.ExpiryDate,
		LocationLat:  req.LocationLat,
		LocationLng:  req.LocationLng,
		Address:      req.Address,
		Description:  req.Description,
		Images:       req.Images,
		Status:       models.ProductStatusAvailable,
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("service.CreateProduct: %w", err)
	}
	return s.repo.FindByID(ctx, product.ID)
}

func (s *Service) List(ctx context.Context, filters models.ProductFilters) ([]*models.Product, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies the non-nil fields after verifying ownership.
func (s *Service) Update(ctx context.Context, id, userID string, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.ownedProduct(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = req.Category
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.HarvestDate != nil {
		product.HarvestDate = req.HarvestDate
	}
	if req.ExpiryDate != nil {
		product.ExpiryDate = req.ExpiryDate
	}
	if req.LocationLat != nil {
		product.LocationLat = req.LocationLat
	}
	if req.LocationLng != nil {
		product.LocationLng = req.LocationLng
	}
	if req.Address != nil {
		product.Address = req.Address
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("service.UpdateProduct: %w", err)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) UpdatePrice(ctx context.Context, id, userID string, req models.UpdatePriceRequest) (*models.Product, error) {
	if _, err := s.ownedProduct(ctx, id, userID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePrice(ctx, id, req.BasePrice, req.CurrentPrice); err != nil {
		return nil, fmt.Errorf("service.UpdatePrice: %w", err)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.ownedProduct(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) ownedProduct(ctx context.Context, id, userID string) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.FarmerID != userID {
		return nil, models.ErrForbidden
	}
	return product, nil
}

// ListAvailableByFarmer satisfies the user module's ProductListerInterface.
func (s *Service) ListAvailableByFarmer(ctx context.Context, farmerID string) ([]*models.Product, error) {
	return s.repo.ListAvailableByFarmer(ctx, farmerID)
}
