package products

import (
	"context"
	"errors"
	"testing"

	"agri-connect/internal/models"
)

type fakeProductRepo struct {
	products map[string]*models.Product
	deleted  []string
}

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	if f.products == nil {
		f.products = map[string]*models.Product{}
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) List(ctx context.Context, filters models.ProductFilters) ([]*models.Product, error) {
	out := []*models.Product{}
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) ListAvailableByFarmer(ctx context.Context, farmerID string) ([]*models.Product, error) {
	out := []*models.Product{}
	for _, p := range f.products {
		if p.FarmerID == farmerID && p.Status == models.ProductStatusAvailable {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *models.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return models.ErrNotFound
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) UpdatePrice(ctx context.Context, id string, basePrice, currentPrice float64) error {
	p, ok := f.products[id]
	if !ok {
		return models.ErrNotFound
	}
	p.BasePrice = basePrice
	p.CurrentPrice = currentPrice
	return nil
}

func (f *fakeProductRepo) SoftDelete(ctx context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return models.ErrNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func TestCreateProductStartsAtBasePrice(t *testing.T) {
	repo := &fakeProductRepo{}
	svc := NewService(repo)

	product, err := svc.Create(context.Background(), "f1", models.CreateProductRequest{
		Name:      "Carrots",
		Quantity:  20,
		Unit:      "kg",
		BasePrice: 150,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.CurrentPrice != 150 {
		t.Fatalf("current price = %v, want base price 150", product.CurrentPrice)
	}
	if product.FarmerID != "f1" || product.Status != models.ProductStatusAvailable {
		t.Fatalf("created product = %+v", product)
	}
	if product.Images == nil {
		t.Fatal("expected images to default to an empty slice")
	}
}

func TestUpdateProductRejectsNonOwner(t *testing.T) {
	repo := &fakeProductRepo{products: map[string]*models.Product{
		"p1": {ID: "p1", FarmerID: "f1", Name: "Carrots"},
	}}
	svc := NewService(repo)

	name := "Stolen Carrots"
	_, err := svc.Update(context.Background(), "p1", "someone-else", models.UpdateProductRequest{Name: &name})
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateProductMergesFields(t *testing.T) {
	repo := &fakeProductRepo{products: map[string]*models.Product{
		"p1": {ID: "p1", FarmerID: "f1", Name: "Carrots", Unit: "kg", Quantity: 20},
	}}
	svc := NewService(repo)

	quantity := 12.5
	product, err := svc.Update(context.Background(), "p1", "f1", models.UpdateProductRequest{Quantity: &quantity})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Quantity != 12.5 {
		t.Fatalf("quantity = %v, want 12.5", product.Quantity)
	}
	if product.Name != "Carrots" || product.Unit != "kg" {
		t.Fatalf("untouched fields changed: %+v", product)
	}
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	repo := &fakeProductRepo{products: map[string]*models.Product{
		"p1": {ID: "p1", FarmerID: "f1"},
	}}
	svc := NewService(repo)

	if err := svc.Delete(context.Background(), "p1", "f1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "p1" {
		t.Fatalf("soft deletes = %v, want [p1]", repo.deleted)
	}

	if err := svc.Delete(context.Background(), "p1", "f2"); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
}

func TestGetProductUnknownID(t *testing.T) {
	svc := NewService(&fakeProductRepo{})

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
