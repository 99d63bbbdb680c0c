package users

import (
	"context"
	"fmt"
	"time"

	"agri-connect/internal/middleware"
	"agri-connect/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ProductListerInterface is the slice of the products module the user service
// needs to assemble a public farmer profile.
type ProductListerInterface interface {
	ListAvailableByFarmer(ctx context.Context, farmerID string) ([]*models.Product, error)
}

// ServiceInterface defines the contract for the user service.
type ServiceInterface interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error)
	GetFarmerProfile(ctx context.Context, farmerID string) (*models.User, []*models.Product, error)
}

// Service implements the user service logic.
type Service struct {
	repo      RepositoryInterface
	products  ProductListerInterface
	jwtSecret string
}

// NewService creates a new user service.
func NewService(repo RepositoryInterface, products ProductListerInterface, jwtSecret string) *Service {
	return &Service{repo: repo, products: products, jwtSecret: jwtSecret}
}

// Register creates an account and returns it with a signed token pair.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.repo.ExistsByEmailOrPhone(ctx, req.Email, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("service.Register: %w", err)
	}
	if exists {
		return nil, models.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("service.Register: hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         req.Role,
		FullName:     req.FullName,
	}
	if req.Address != "" {
		user.Address = &req.Address
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("service.Register: %w", err)
	}

	created, err := s.repo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("service.Register: %w", err)
	}

	return s.authResponse(created)
}

// Login verifies credentials and returns the user with a token pair.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == models.ErrNotFound {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("service.Login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, models.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if err == models.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("service.GetProfile: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of the request to the stored user.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if err == models.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("service.UpdateProfile: %w", err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	if req.LocationLat != nil {
		user.LocationLat = req.LocationLat
	}
	if req.LocationLng != nil {
		user.LocationLng = req.LocationLng
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.FarmName != nil {
		user.FarmName = req.FarmName
	}
	if req.ProfileImage != nil {
		user.ProfileImage = req.ProfileImage
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("service.UpdateProfile: %w", err)
	}
	return user, nil
}

// GetFarmerProfile returns a farmer's public profile together with their
// available listings.
func (s *Service) GetFarmerProfile(ctx context.Context, farmerID string) (*models.User, []*models.Product, error) {
	farmer, err := s.repo.FindByID(ctx, farmerID)
	if err != nil {
		if err == models.ErrNotFound {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("service.GetFarmerProfile: %w", err)
	}
	if farmer.Role != models.RoleFarmer {
		return nil, nil, models.ErrNotFound
	}

	products, err := s.products.ListAvailableByFarmer(ctx, farmerID)
	if err != nil {
		return nil, nil, fmt.Errorf("service.GetFarmerProfile: %w", err)
	}
	return farmer, products, nil
}

func (s *Service) authResponse(user *models.User) (*models.AuthResponse, error) {
	access, err := s.signToken(user, time.Hour)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.signToken(user, 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &models.AuthResponse{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) signToken(user *models.User, ttl time.Duration) (string, error) {
	claims := &middleware.Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
