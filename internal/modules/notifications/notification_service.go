package notifications

import (
	"context"
	"fmt"

	"agri-connect/internal/models"

	"github.com/google/uuid"
)

const listLimit = 50

// ServiceInterface defines the contract for the notification service.
type ServiceInterface interface {
	Notify(ctx context.Context, req models.CreateNotificationRequest) (*models.Notification, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
}

// Service implements the notification service logic.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new notification service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Notify records an in-app notification for a user.
func (s *Service) Notify(ctx context.Context, req models.CreateNotificationRequest) (*models.Notification, error) {
	n := &models.Notification{
		ID:      uuid.NewString(),
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
	}
	if req.RelatedID != "" {
		n.RelatedID = &req.RelatedID
	}

	if err := s.repo.Insert(ctx, n); err != nil {
		return nil, fmt.Errorf("service.Notify: %w", err)
	}
	return n, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	return s.repo.ListByUser(ctx, userID, listLimit)
}

func (s *Service) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}
