package orders

import (
	"context"
	"fmt"
	"strings"

	"agri-connect/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductReaderInterface is the slice of the products module the order
// service needs: price and ownership lookups at order time.
type ProductReaderInterface interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// NotifierInterface records in-app notifications for order lifecycle events.
type NotifierInterface interface {
	Notify(ctx context.Context, req models.CreateNotificationRequest) (*models.Notification, error)
}

// PaymentServiceInterface defines the contract for a payment processing service.
type PaymentServiceInterface interface {
	ProcessPayment(ctx context.Context, userID string, amount float64, paymentMethodID string) (string, error)
}

// ServiceInterface defines the contract for the order service.
type ServiceInterface interface {
	Create(ctx context.Context, buyerID string, req models.CreateOrderRequest) (*models.Order, error)
	GetByID(ctx context.Context, orderID string) (*models.Order, error)
	ListForUser(ctx context.Context, userID, role string) ([]*models.Order, error)
	Update(ctx context.Context, orderID string, req models.UpdateOrderRequest) (*models.Order, error)
}

// Service implements the order service logic.
type Service struct {
	repo     RepositoryInterface
	products ProductReaderInterface
	notifier NotifierInterface
	payments PaymentServiceInterface
	log      *zap.SugaredLogger
}

// NewService creates a new order service.
func NewService(repo RepositoryInterface, products ProductReaderInterface, notifier NotifierInterface, payments PaymentServiceInterface, log *zap.SugaredLogger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		notifier: notifier,
		payments: payments,
		log:      log,
	}
}

// Create places an order: snapshots the current price, settles payment for
// card/bank transfer methods, reserves stock, and notifies the farmer.
func (s *Service) Create(ctx context.Context, buyerID string, req models.CreateOrderRequest) (*models.Order, error) {
	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Quantity < req.Quantity {
		return nil, models.ErrInsufficientQuantity
	}

	order := &models.Order{
		ID:            uuid.NewString(),
		ProductID:     req.ProductID,
		BuyerID:       buyerID,
		Quantity:      req.Quantity,
		UnitPrice:     product.CurrentPrice,
		TotalPrice:    product.CurrentPrice * req.Quantity,
		Status:        models.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.PaymentStatusPending,
	}
	if req.DeliveryAddress != "" {
		order.DeliveryAddress = &req.DeliveryAddress
	}
	order.DeliveryLat = req.DeliveryLat
	order.DeliveryLng = req.DeliveryLng

	switch req.PaymentMethod {
	case models.PaymentMethodCard:
		if _, err := s.payments.ProcessPayment(ctx, buyerID, order.TotalPrice, req.PaymentMethodID); err != nil {
			return nil, fmt.Errorf("service.CreateOrder: payment: %w", err)
		}
		order.PaymentStatus = models.PaymentStatusPaid
	case models.PaymentMethodBankTransfer:
		order.PaymentStatus = models.PaymentStatusPaid
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.notify(ctx, models.CreateNotificationRequest{
		UserID:    product.FarmerID,
		Title:     "New Order Received! 🚜",
		Message:   fmt.Sprintf("You have a new order for %s. Please confirm it.", product.Name),
		Type:      "new_order",
		RelatedID: order.ID,
	})

	return s.repo.FindByID(ctx, order.ID)
}

func (s *Service) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	return s.repo.FindByID(ctx, orderID)
}

// ListForUser returns the orders visible to a user: purchases for buyers,
// incoming orders for farmers.
func (s *Service) ListForUser(ctx context.Context, userID, role string) ([]*models.Order, error) {
	switch role {
	case models.RoleBuyer:
		return s.repo.ListByBuyer(ctx, userID)
	case models.RoleFarmer:
		return s.repo.ListByFarmer(ctx, userID)
	}
	return []*models.Order{}, nil
}

// Update advances the order lifecycle and notifies the buyer about status
// changes. Cancellation restores reserved stock (handled by the repository).
func (s *Service) Update(ctx context.Context, orderID string, req models.UpdateOrderRequest) (*models.Order, error) {
	if err := s.repo.Update(ctx, orderID, req.Status, req.PaymentStatus); err != nil {
		return nil, err
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		title, message := statusNotification(*req.Status, order.ProductName)
		s.notify(ctx, models.CreateNotificationRequest{
			UserID:    order.BuyerID,
			Title:     title,
			Message:   message,
			Type:      "order_status",
			RelatedID: order.ID,
		})
	}

	return order, nil
}

// statusNotification maps an order status to the buyer-facing copy.
func statusNotification(status, productName string) (title, message string) {
	switch status {
	case models.OrderStatusConfirmed:
		return "Order Accepted! ✅", fmt.Sprintf("The farmer has accepted your order for %s. Ready for logistics!", productName)
	case models.OrderStatusInTransit:
		return "On the Way! 🚚", fmt.Sprintf("Your order for %s has been picked up and is in transit.", productName)
	case models.OrderStatusDelivered:
		return "Success! 🥳", fmt.Sprintf("Your order for %s has been delivered. Enjoy!", productName)
	case models.OrderStatusCompleted:
		return "Mission Accomplished! 🏁", fmt.Sprintf("The buyer has confirmed receipt of %s. Trip finalized.", productName)
	}
	return "Order Update! 📦", fmt.Sprintf("Your order for %s is now %s.", productName, strings.ReplaceAll(status, "_", " "))
}

// notify records a notification but never fails the order operation over it.
func (s *Service) notify(ctx context.Context, req models.CreateNotificationRequest) {
	if _, err := s.notifier.Notify(ctx, req); err != nil {
		s.log.Warnw("failed to record notification", "user_id", req.UserID, "type", req.Type, "error", err)
	}
}
