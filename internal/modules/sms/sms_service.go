package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"agri-connect/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceInterface defines the contract for the SMS service.
type ServiceInterface interface {
	Send(ctx context.Context, to, message string) error
	HandleIncoming(ctx context.Context, from, body string) (string, error)
}

// Service logs SMS traffic and answers simple keyword commands. The transport
// is mocked: outbound messages are logged, not delivered.
type Service struct {
	repo RepositoryInterface
	log  *zap.SugaredLogger
}

// NewService creates a new SMS service.
func NewService(repo RepositoryInterface, log *zap.SugaredLogger) *Service {
	return &Service{repo: repo, log: log}
}

// Send records an outbound message. A real gateway integration would hand the
// message to the provider here.
func (s *Service) Send(ctx context.Context, to, message string) error {
	s.log.Infow("sending sms", "to", to, "message", message)

	return s.repo.InsertLog(ctx, &models.SmsLog{
		ID:        uuid.New().String(),
		Phone:     to,
		Message:   message,
		Direction: models.SmsDirectionOutbound,
		Status:    models.SmsStatusSent,
	})
}

// HandleIncoming logs an inbound message and returns the reply text. The only
// command is PRICE <product name>; anything else gets the welcome prompt.
func (s *Service) HandleIncoming(ctx context.Context, from, body string) (string, error) {
	s.log.Infow("received sms", "from", from, "message", body)

	err := s.repo.InsertLog(ctx, &models.SmsLog{
		ID:        uuid.New().String(),
		Phone:     from,
		Message:   body,
		Direction: models.SmsDirectionInbound,
		Status:    models.SmsStatusReceived,
	})
	if err != nil {
		return "", err
	}

	command := strings.ToUpper(strings.TrimSpace(body))
	if strings.HasPrefix(command, "PRICE") {
		productName := strings.TrimSpace(strings.TrimSpace(body)[5:])
		product, err := s.repo.FindProductByName(ctx, productName)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return "Product not found. Try PRICE [product name]", nil
			}
			return "", err
		}
		return fmt.Sprintf("%s is currently Rs. %g/%s. Reply ORDER %s [qty] to buy.",
			product.Name, product.CurrentPrice, product.Unit, product.ID), nil
	}

	return "Welcome to Agri-Connect. Reply PRICE [product] to get prices.", nil
}
