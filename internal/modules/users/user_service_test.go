package users

import (
	"context"
	"errors"
	"testing"

	"agri-connect/internal/models"

	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]*models.User // by ID
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.users == nil {
		f.users = map[string]*models.User{}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email || u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return models.ErrNotFound
	}
	f.users[user.ID] = user
	return nil
}

type fakeProductLister struct {
	products []*models.Product
}

func (f *fakeProductLister) ListAvailableByFarmer(ctx context.Context, farmerID string) ([]*models.Product, error) {
	return f.products, nil
}

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewService(repo, &fakeProductLister{}, testSecret)

	req := models.RegisterRequest{
		Email:    "nimal@example.com",
		Phone:    "0711234567",
		Password: "hunter22",
		Role:     models.RoleFarmer,
		FullName: "Nimal Perera",
	}
	resp, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected signed token pair")
	}
	if resp.User.Email != req.Email || resp.User.Role != models.RoleFarmer {
		t.Fatalf("registered user = %+v", resp.User)
	}

	login, err := svc.Login(context.Background(), models.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		t.Fatalf("login after register failed: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Fatalf("login returned different user: %s vs %s", login.User.ID, resp.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "taken@example.com", Phone: "0710000000"},
	}}
	svc := NewService(repo, &fakeProductLister{}, testSecret)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "taken@example.com",
		Phone:    "0719999999",
		Password: "hunter22",
		Role:     models.RoleBuyer,
		FullName: "Someone Else",
	})
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	repo := &fakeUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "nimal@example.com", PasswordHash: string(hash)},
	}}
	svc := NewService(repo, &fakeProductLister{}, testSecret)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nimal@example.com", Password: "wrong"})
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, &fakeProductLister{}, testSecret)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "x"})
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdateProfileMergesFields(t *testing.T) {
	address := "old address"
	repo := &fakeUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", FullName: "Nimal Perera", Email: "nimal@example.com", Address: &address},
	}}
	svc := NewService(repo, &fakeProductLister{}, testSecret)

	name := "Nimal P. Perera"
	lat, lng := 6.93, 79.85
	user, err := svc.UpdateProfile(context.Background(), "u1", models.UpdateProfileRequest{
		FullName:    &name,
		LocationLat: &lat,
		LocationLng: &lng,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.FullName != name {
		t.Fatalf("full name = %q, want %q", user.FullName, name)
	}
	if user.LocationLat == nil || *user.LocationLat != lat {
		t.Fatalf("location lat = %v, want %v", user.LocationLat, lat)
	}
	if user.Address == nil || *user.Address != "old address" {
		t.Fatalf("untouched field changed: %v", user.Address)
	}
	if user.Email != "nimal@example.com" {
		t.Fatalf("untouched email changed: %q", user.Email)
	}
}

func TestGetFarmerProfileRejectsNonFarmer(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Role: models.RoleBuyer},
	}}
	svc := NewService(repo, &fakeProductLister{}, testSecret)

	_, _, err := svc.GetFarmerProfile(context.Background(), "u1")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-farmer, got %v", err)
	}
}

func TestGetFarmerProfileIncludesListings(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*models.User{
		"f1": {ID: "f1", Role: models.RoleFarmer, FullName: "Nimal Perera"},
	}}
	lister := &fakeProductLister{products: []*models.Product{
		{ID: "p1", FarmerID: "f1", Name: "Carrots"},
	}}
	svc := NewService(repo, lister, testSecret)

	farmer, products, err := svc.GetFarmerProfile(context.Background(), "f1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if farmer.ID != "f1" || len(products) != 1 {
		t.Fatalf("profile = %+v with %d products", farmer, len(products))
	}
}
