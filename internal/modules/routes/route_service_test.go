package routes

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"agri-connect/internal/models"
	"agri-connect/pkg/geo"

	"go.uber.org/zap"
)

// fakeRepo serves orders, products, and users from maps, standing in for the
// persistence layer.
type fakeRepo struct {
	orders   []*models.Order
	products map[string]*models.Product
	users    map[string]*models.User
	err      error
}

func (f *fakeRepo) ListActiveOrders(ctx context.Context) ([]*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.orders, nil
}

func (f *fakeRepo) FindProduct(ctx context.Context, id string) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) FindUser(ctx context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return u, nil
}

var testDepot = geo.Point{Lat: 6.9271, Lng: 79.8612}

func newTestService(repo RepositoryInterface) *Service {
	return NewService(repo, testDepot, zap.NewNop().Sugar())
}

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func order(id, productID, buyerID, status string, lat, lng *float64) *models.Order {
	return &models.Order{
		ID:            id,
		ProductID:     productID,
		BuyerID:       buyerID,
		Quantity:      5,
		UnitPrice:     100,
		TotalPrice:    500,
		Status:        status,
		PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentStatusPending,
		DeliveryLat:   lat,
		DeliveryLng:   lng,
	}
}

func product(id, farmerID, name string, lat, lng *float64) *models.Product {
	return &models.Product{ID: id, FarmerID: farmerID, Name: name, LocationLat: lat, LocationLng: lng}
}

func user(id, role, name, phone string, lat, lng *float64) *models.User {
	return &models.User{ID: id, Role: role, FullName: name, Phone: phone, LocationLat: lat, LocationLng: lng}
}

func stopIDs(route []models.Stop) []string {
	ids := make([]string, len(route))
	for i, s := range route {
		ids[i] = s.ID
	}
	return ids
}

func TestOptimizeRouteEmptyInput(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	route, err := svc.OptimizeRoute(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(route) != 0 {
		t.Fatalf("expected empty route, got %d stops", len(route))
	}
}

func TestOptimizeRouteSingleOrder(t *testing.T) {
	repo := &fakeRepo{
		orders: []*models.Order{
			order("o1", "p1", "b1", models.OrderStatusPending, fptr(6.90), fptr(79.86)),
		},
		products: map[string]*models.Product{
			"p1": product("p1", "f1", "Carrots", fptr(6.93), fptr(79.85)),
		},
		users: map[string]*models.User{
			"f1": user("f1", models.RoleFarmer, "Nimal Perera", "0711111111", nil, nil),
			"b1": user("b1", models.RoleBuyer, "Kamala Silva", "0722222222", nil, nil),
		},
	}
	svc := newTestService(repo)

	route, err := svc.OptimizeRoute(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route) != 2 {
		t.Fatalf("expected 2 stops, got %d: %v", len(route), stopIDs(route))
	}
	if route[0].ID != "pickup-o1" || route[1].ID != "delivery-o1" {
		t.Fatalf("expected pickup before delivery, got %v", stopIDs(route))
	}
	if route[0].OrderID != "o1" || route[1].OrderID != "o1" {
		t.Fatalf("stops reference wrong order: %+v", route)
	}
	if route[0].Details.CustomerName != "Nimal Perera" {
		t.Fatalf("pickup customer = %q, want farmer name", route[0].Details.CustomerName)
	}
	if route[1].Details.CustomerName != "Kamala Silva" {
		t.Fatalf("delivery customer = %q, want buyer name", route[1].Details.CustomerName)
	}
}

func TestOptimizeRoutePrecedenceEnforced(t *testing.T) {
	// B's delivery sits right next to the depot, nearer than anything else,
	// but it must wait for B's pickup regardless.
	repo := &fakeRepo{
		orders: []*models.Order{
			order("a", "pa", "ba", models.OrderStatusPending, fptr(6.9471), fptr(79.8612)),
			order("b", "pb", "bb", models.OrderStatusPending, fptr(6.9281), fptr(79.8612)),
		},
		products: map[string]*models.Product{
			"pa": product("pa", "f1", "Leeks", fptr(6.9371), fptr(79.8612)),
			"pb": product("pb", "f2", "Beans", fptr(6.9571), fptr(79.8612)),
		},
		users: map[string]*models.User{
			"f1": user("f1", models.RoleFarmer, "Farmer One", "071", nil, nil),
			"f2": user("f2", models.RoleFarmer, "Farmer Two", "072", nil, nil),
			"ba": user("ba", models.RoleBuyer, "Buyer A", "073", nil, nil),
			"bb": user("bb", models.RoleBuyer, "Buyer B", "074", nil, nil),
		},
	}
	svc := newTestService(repo)

	route, err := svc.OptimizeRoute(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"pickup-a", "delivery-a", "pickup-b", "delivery-b"}
	if got := stopIDs(route); !reflect.DeepEqual(got, want) {
		t.Fatalf("route = %v, want %v", got, want)
	}

	pickupIdx, deliveryIdx := -1, -1
	for i, s := range route {
		if s.OrderID == "b" && s.Type == models.StopTypePickup {
			pickupIdx = i
		}
		if s.OrderID == "b" && s.Type == models.StopTypeDelivery {
			deliveryIdx = i
		}
	}
	if pickupIdx == -1 || deliveryIdx == -1 || deliveryIdx < pickupIdx {
		t.Fatalf("delivery for order b scheduled before its pickup: %v", stopIDs(route))
	}
}

func TestOptimizeRouteInTransitShortcut(t *testing.T) {
	// The goods are already on the vehicle: no pickup stop is produced, yet
	// the delivery is immediately visitable.
	repo := &fakeRepo{
		orders: []*models.Order{
			order("o1", "p1", "b1", models.OrderStatusInTransit, fptr(6.90), fptr(79.86)),
		},
		products: map[string]*models.Product{
			"p1": product("p1", "f1", "Pumpkins", fptr(6.93), fptr(79.85)),
		},
		users: map[string]*models.User{
			"f1": user("f1", models.RoleFarmer, "Farmer", "071", nil, nil),
			"b1": user("b1", models.RoleBuyer, "Buyer", "072", nil, nil),
		},
	}
	svc := newTestService(repo)

	route, err := svc.OptimizeRoute(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route) != 1 {
		t.Fatalf("expected 1 stop, got %v", stopIDs(route))
	}
	if route[0].ID != "delivery-o1" {
		t.Fatalf("expected only the delivery stop, got %v", stopIDs(route))
	}
}

func TestOptimizeRouteUnresolvablePickupDropped(t *testing.T) {
	// Neither the product nor the farmer profile has coordinates, so no
	// pickup stop can exist. Its delivery is then permanently blocked and
	// dropped by the defensive termination, while the healthy order still
	// routes in full.
	repo := &fakeRepo{
		orders: []*models.Order{
			order("ok", "p1", "b1", models.OrderStatusPending, fptr(6.94), fptr(79.87)),
			order("broken", "p2", "b2", models.OrderStatusPending, fptr(6.95), fptr(79.88)),
		},
		products: map[string]*models.Product{
			"p1": product("p1", "f1", "Tomatoes", fptr(6.93), fptr(79.85)),
			"p2": product("p2", "f2", "Onions", nil, nil),
		},
		users: map[string]*models.User{
			"f1": user("f1", models.RoleFarmer, "Farmer One", "071", nil, nil),
			"f2": user("f2", models.RoleFarmer, "Farmer Two", "072", nil, nil), // no location either
			"b1": user("b1", models.RoleBuyer, "Buyer One", "073", nil, nil),
			"b2": user("b2", models.RoleBuyer, "Buyer Two", "074", nil, nil),
		},
	}
	svc := newTestService(repo)

	route, err := svc.OptimizeRoute(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range route {
		if s.OrderID == "broken" {
			t.Fatalf("order with unresolvable pickup leaked into route: %v", stopIDs(route))
		}
	}
	want := []string{"pickup-ok", "delivery-ok"}
	if got := stopIDs(route); !reflect.DeepEqual(got, want) {
		t.Fatalf("route = %v, want %v", got, want)
	}
}

func TestOptimizeRouteFallbackToProfileLocation(t *testing.T) {
	// Product has no coordinates but the farmer profile does; likewise the
	// order has none but the buyer profile does.
	repo := &fakeRepo{
		orders: []*models.Order{
			order("o1", "p1", "b1", models.OrderStatusPending, nil, nil),
		},
		products: map[string]*models.Product{
			"p1": product("p1", "f1", "Cabbage", nil, nil),
		},
		users: map[string]*models.User{
			"f1": func() *models.User {
				u := user("f1", models.RoleFarmer, "Farmer", "071", fptr(6.93), fptr(79.85))
				u.FarmName = sptr("Green Valley Farm")
				return u
			}(),
			"b1": func() *models.User {
				u := user("b1", models.RoleBuyer, "Buyer", "072", fptr(6.90), fptr(79.86))
				u.Address = sptr("12 Galle Road")
				return u
			}(),
		},
	}
	svc := newTestService(repo)

	route, err := svc.OptimizeRoute(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route) != 2 {
		t.Fatalf("expected 2 stops, got %v", stopIDs(route))
	}
	if route[0].Address != "Green Valley Farm" {
		t.Fatalf("pickup address = %q, want farm name fallback", route[0].Address)
	}
	if route[1].Address != "12 Galle Road" {
		t.Fatalf("delivery address = %q, want buyer address fallback", route[1].Address)
	}
}

func TestOptimizeRouteMalformedCoordinatesExcluded(t *testing.T) {
	repo := &fakeRepo{
		orders: []*models.Order{
			order("bad", "p1", "b1", models.OrderStatusInTransit, fptr(200), fptr(79.86)),
			order("good", "p2", "b2", models.OrderStatusInTransit, fptr(6.90), fptr(79.86)),
		},
		products: map[string]*models.Product{
			"p1": product("p1", "f1", "Mangoes", nil, nil),
			"p2": product("p2", "f1", "Papayas", nil, nil),
		},
		users: map[string]*models.User{
			"f1": user("f1", models.RoleFarmer, "Farmer", "071", nil, nil),
			"b1": user("b1", models.RoleBuyer, "Buyer One", "072", nil, nil),
			"b2": user("b2", models.RoleBuyer, "Buyer Two", "073", nil, nil),
		},
	}
	svc := newTestService(repo)

	route, err := svc.OptimizeRoute(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"delivery-good"}
	if got := stopIDs(route); !reflect.DeepEqual(got, want) {
		t.Fatalf("route = %v, want %v", got, want)
	}
}

func TestOptimizeRouteTieBreakIsFirstEncountered(t *testing.T) {
	// Two pickups exactly equidistant from the depot (symmetric latitude
	// offsets). The scan must keep the first candidate, not the last.
	repo := &fakeRepo{
		orders: []*models.Order{
			order("first", "p1", "b1", models.OrderStatusPending, nil, nil),
			order("second", "p2", "b2", models.OrderStatusPending, nil, nil),
		},
		products: map[string]*models.Product{
			"p1": product("p1", "f1", "Beets", fptr(testDepot.Lat+0.01), fptr(testDepot.Lng)),
			"p2": product("p2", "f2", "Kale", fptr(testDepot.Lat-0.01), fptr(testDepot.Lng)),
		},
		users: map[string]*models.User{
			"f1": user("f1", models.RoleFarmer, "Farmer One", "071", nil, nil),
			"f2": user("f2", models.RoleFarmer, "Farmer Two", "072", nil, nil),
			// Buyers without locations: no delivery stops, pickups only.
			"b1": user("b1", models.RoleBuyer, "Buyer One", "073", nil, nil),
			"b2": user("b2", models.RoleBuyer, "Buyer Two", "074", nil, nil),
		},
	}
	svc := newTestService(repo)

	route, err := svc.OptimizeRoute(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route) != 2 {
		t.Fatalf("expected 2 stops, got %v", stopIDs(route))
	}
	if route[0].ID != "pickup-first" {
		t.Fatalf("tie broke to %q, want the first-encountered stop", route[0].ID)
	}
}

func TestOptimizeRouteIsIdempotent(t *testing.T) {
	repo := &fakeRepo{
		orders: []*models.Order{
			order("a", "pa", "ba", models.OrderStatusPending, fptr(6.9471), fptr(79.8612)),
			order("b", "pb", "bb", models.OrderStatusConfirmed, fptr(6.9281), fptr(79.8612)),
			order("c", "pc", "bc", models.OrderStatusInTransit, fptr(6.9331), fptr(79.8412)),
		},
		products: map[string]*models.Product{
			"pa": product("pa", "f1", "Leeks", fptr(6.9371), fptr(79.8612)),
			"pb": product("pb", "f2", "Beans", fptr(6.9571), fptr(79.8612)),
			"pc": product("pc", "f1", "Corn", fptr(6.9171), fptr(79.8512)),
		},
		users: map[string]*models.User{
			"f1": user("f1", models.RoleFarmer, "Farmer One", "071", nil, nil),
			"f2": user("f2", models.RoleFarmer, "Farmer Two", "072", nil, nil),
			"ba": user("ba", models.RoleBuyer, "Buyer A", "073", nil, nil),
			"bb": user("bb", models.RoleBuyer, "Buyer B", "074", nil, nil),
			"bc": user("bc", models.RoleBuyer, "Buyer C", "075", nil, nil),
		},
	}
	svc := newTestService(repo)

	first, err := svc.OptimizeRoute(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.OptimizeRoute(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("routes differ between identical calls:\n%v\n%v", stopIDs(first), stopIDs(second))
	}
}

func TestOptimizeRouteRepositoryErrorPropagates(t *testing.T) {
	repoErr := errors.New("connection refused")
	svc := newTestService(&fakeRepo{err: repoErr})

	_, err := svc.OptimizeRoute(context.Background(), "driver-1")
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error to surface, got %v", err)
	}
}

func TestOptimizeRouteMissingProductStillDelivers(t *testing.T) {
	// Product row vanished but the order is in transit with delivery
	// coordinates: the delivery still routes, with placeholder details.
	repo := &fakeRepo{
		orders: []*models.Order{
			order("o1", "ghost", "b1", models.OrderStatusInTransit, fptr(6.90), fptr(79.86)),
		},
		products: map[string]*models.Product{},
		users: map[string]*models.User{
			"b1": user("b1", models.RoleBuyer, "Buyer", "072", nil, nil),
		},
	}
	svc := newTestService(repo)

	route, err := svc.OptimizeRoute(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route) != 1 || route[0].ID != "delivery-o1" {
		t.Fatalf("expected the delivery stop, got %v", stopIDs(route))
	}
	if route[0].Details.ProductName != "Unknown Product" {
		t.Fatalf("product name = %q, want placeholder", route[0].Details.ProductName)
	}
}
