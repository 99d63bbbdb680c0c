package routes

import (
	"context"
	"errors"
	"math"

	"agri-connect/internal/models"
	"agri-connect/pkg/geo"

	"go.uber.org/zap"
)

// ServiceInterface defines the contract for the route optimization service.
type ServiceInterface interface {
	OptimizeRoute(ctx context.Context, driverID string) ([]models.Stop, error)
}

// Service computes a single-vehicle visitation sequence over all outstanding
// orders using a greedy nearest-neighbor traversal. It is stateless: every
// call re-reads the repository and recomputes from scratch, so concurrent
// calls are independent.
type Service struct {
	repo  RepositoryInterface
	depot geo.Point
	log   *zap.SugaredLogger
}

// NewService creates a new route service. The depot is the fixed point every
// route departs from.
func NewService(repo RepositoryInterface, depot geo.Point, log *zap.SugaredLogger) *Service {
	return &Service{repo: repo, depot: depot, log: log}
}

// OptimizeRoute builds the candidate stop set for all active orders and
// orders it with a nearest-neighbor traversal that never schedules a delivery
// before its pickup. The driverID is accepted for interface stability but
// does not filter orders: all active orders system-wide go into one sequence.
func (s *Service) OptimizeRoute(ctx context.Context, driverID string) ([]models.Stop, error) {
	orders, err := s.repo.ListActiveOrders(ctx)
	if err != nil {
		return nil, err
	}

	stops, err := s.buildStops(ctx, orders)
	if err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return []models.Stop{}, nil
	}

	// Deliveries for orders already picked up on a previous run are
	// immediately visitable even though no pickup stop precedes them here.
	inTransit := make(map[string]bool)
	for _, order := range orders {
		if order.Status == models.OrderStatusInTransit {
			inTransit[order.ID] = true
		}
	}

	return s.nearestNeighbor(stops, inTransit), nil
}

// buildStops derives at most one pickup and one delivery stop per order.
// Coordinates resolve through a two-tier fallback: the product/order record
// first, then the owning user's profile. A stop whose coordinates cannot be
// resolved, or fail validation, is dropped; the rest of the route survives.
func (s *Service) buildStops(ctx context.Context, orders []*models.Order) ([]models.Stop, error) {
	stops := []models.Stop{}

	for _, order := range orders {
		product, err := s.repo.FindProduct(ctx, order.ProductID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}

		// Pickup: farmer side.
		var pickupPos *geo.Point
		var pickupAddress, farmerName, farmerPhone string

		if product != nil && product.LocationLat != nil && product.LocationLng != nil {
			pickupPos = &geo.Point{Lat: *product.LocationLat, Lng: *product.LocationLng}
			pickupAddress = coalesce(deref(product.Address), "Farmer Product Location")
		}

		// The farmer profile is always fetched for contact info, and doubles
		// as the location fallback.
		if product != nil && product.FarmerID != "" {
			farmer, err := s.repo.FindUser(ctx, product.FarmerID)
			if err != nil && !errors.Is(err, models.ErrNotFound) {
				return nil, err
			}
			if farmer != nil {
				farmerName = coalesce(farmer.FullName, deref(farmer.FarmName))
				farmerPhone = farmer.Phone
				if pickupPos == nil && farmer.LocationLat != nil && farmer.LocationLng != nil {
					pickupPos = &geo.Point{Lat: *farmer.LocationLat, Lng: *farmer.LocationLng}
					pickupAddress = coalesce(deref(farmer.FarmName), deref(farmer.Address), "Farmer Profile Location")
				}
			}
		}

		productName := "Unknown Product"
		if product != nil {
			productName = product.Name
		}

		// No pickup once the goods are already on the vehicle (or handed over).
		if pickupPos != nil && order.Status != models.OrderStatusInTransit && order.Status != models.OrderStatusDelivered {
			stop := models.Stop{
				ID:      "pickup-" + order.ID,
				Lat:     pickupPos.Lat,
				Lng:     pickupPos.Lng,
				Address: pickupAddress,
				Type:    models.StopTypePickup,
				OrderID: order.ID,
				Details: models.StopDetails{
					ProductName:   productName,
					Quantity:      order.Quantity,
					CustomerName:  coalesce(farmerName, "Farmer"),
					CustomerPhone: coalesce(farmerPhone, "N/A"),
					PaymentMethod: order.PaymentMethod,
					PaymentStatus: order.PaymentStatus,
					TotalPrice:    order.TotalPrice,
					Status:        order.Status,
				},
			}
			stops = s.appendValid(stops, stop)
		}

		// Delivery: buyer side.
		var deliveryPos *geo.Point
		var deliveryAddress, buyerName, buyerPhone string

		if order.DeliveryLat != nil && order.DeliveryLng != nil {
			deliveryPos = &geo.Point{Lat: *order.DeliveryLat, Lng: *order.DeliveryLng}
			deliveryAddress = deref(order.DeliveryAddress)
		}

		if order.BuyerID != "" {
			buyer, err := s.repo.FindUser(ctx, order.BuyerID)
			if err != nil && !errors.Is(err, models.ErrNotFound) {
				return nil, err
			}
			if buyer != nil {
				buyerName = buyer.FullName
				buyerPhone = buyer.Phone
				if deliveryPos == nil && buyer.LocationLat != nil && buyer.LocationLng != nil {
					deliveryPos = &geo.Point{Lat: *buyer.LocationLat, Lng: *buyer.LocationLng}
					deliveryAddress = coalesce(deref(buyer.Address), "Buyer Profile Location")
				}
			}
		}

		// Deliveries stay on the route in every active status, so goods
		// already in transit still reach the buyer.
		if deliveryPos != nil {
			stop := models.Stop{
				ID:      "delivery-" + order.ID,
				Lat:     deliveryPos.Lat,
				Lng:     deliveryPos.Lng,
				Address: deliveryAddress,
				Type:    models.StopTypeDelivery,
				OrderID: order.ID,
				Details: models.StopDetails{
					ProductName:   productName,
					Quantity:      order.Quantity,
					CustomerName:  coalesce(buyerName, "Buyer"),
					CustomerPhone: coalesce(buyerPhone, "N/A"),
					PaymentMethod: order.PaymentMethod,
					PaymentStatus: order.PaymentStatus,
					TotalPrice:    order.TotalPrice,
					Status:        order.Status,
				},
			}
			stops = s.appendValid(stops, stop)
		}
	}

	return stops, nil
}

// appendValid adds the stop unless its coordinates are malformed, in which
// case the defect is logged and the stop excluded rather than aborting the
// whole computation.
func (s *Service) appendValid(stops []models.Stop, stop models.Stop) []models.Stop {
	if err := (geo.Point{Lat: stop.Lat, Lng: stop.Lng}).Validate(); err != nil {
		s.log.Warnw("excluding stop with malformed coordinates",
			"stop_id", stop.ID, "order_id", stop.OrderID, "lat", stop.Lat, "lng", stop.Lng)
		return stops
	}
	return append(stops, stop)
}

// nearestNeighbor greedily picks the closest visitable stop at each step,
// starting from the depot. A delivery is visitable only once its pickup is in
// the route, or the order was already in transit before this run. Ties break
// to the first stop encountered in the scan (strict less-than), which keeps
// the result deterministic for a fixed input order.
func (s *Service) nearestNeighbor(stops []models.Stop, inTransit map[string]bool) []models.Stop {
	current := s.depot
	route := make([]models.Stop, 0, len(stops))
	unvisited := append([]models.Stop(nil), stops...)
	pickedUp := make(map[string]bool)

	for len(unvisited) > 0 {
		nearest := -1
		minDist := math.Inf(1)

		for i, stop := range unvisited {
			if stop.Type == models.StopTypeDelivery && !pickedUp[stop.OrderID] && !inTransit[stop.OrderID] {
				continue
			}
			d := geo.Distance(current, geo.Point{Lat: stop.Lat, Lng: stop.Lng})
			if d < minDist {
				minDist = d
				nearest = i
			}
		}

		// Nothing visitable means only blocked deliveries remain, which can
		// only happen when a pickup was dropped for bad data. Route the
		// nearest pickup regardless to avoid stalling; with no pickups left
		// the loop terminates and the blocked deliveries are dropped.
		if nearest == -1 {
			for i, stop := range unvisited {
				if stop.Type != models.StopTypePickup {
					continue
				}
				d := geo.Distance(current, geo.Point{Lat: stop.Lat, Lng: stop.Lng})
				if d < minDist {
					minDist = d
					nearest = i
				}
			}
		}

		if nearest == -1 {
			break
		}

		next := unvisited[nearest]
		route = append(route, next)
		if next.Type == models.StopTypePickup {
			pickedUp[next.OrderID] = true
		}
		current = geo.Point{Lat: next.Lat, Lng: next.Lng}
		unvisited = append(unvisited[:nearest], unvisited[nearest+1:]...)
	}

	return route
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
