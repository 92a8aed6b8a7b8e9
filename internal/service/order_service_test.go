package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedProduct(t *testing.T, store *memStore, id, name string, price float64, stock int) {
	t.Helper()
	now := time.Now()
	err := store.CreateProduct(context.Background(), &domain.Product{
		ProductID: id,
		Name:      name,
		NameLower: strings.ToLower(name),
		Price:     price,
		Stock:     stock,
		SellerID:  "seller-1",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
}

func newOrderService(store *memStore, publisher OrderEventPublisher) *OrderService {
	return NewOrderService(store, store, publisher, zap.NewNop())
}

func TestPlaceOrder_DecrementsStockAndCreatesOrder(t *testing.T) {
	store := newMemStore()
	publisher := &capturePublisher{}
	svc := newOrderService(store, publisher)
	seedProduct(t, store, "prod-1", "Sample Phone", 599.99, 10)

	actor := domain.Identity{UserID: "user-1", Role: domain.RoleCustomer}
	result, err := svc.PlaceOrder(context.Background(), actor, "prod-1", 3)

	require.NoError(t, err)
	require.NotNil(t, result.Order)
	assert.Equal(t, 10, result.PreviousStock)
	assert.Equal(t, 7, result.NewStock)
	assert.Equal(t, 7, store.stockOf("prod-1"))
	assert.Equal(t, 1, store.orderCount())

	order := result.Order
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, "prod-1", order.ProductID)
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, "Sample Phone", order.ProductName)
	assert.Equal(t, 599.99, order.UnitPrice)
	assert.False(t, order.CreatedAt.IsZero())

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, order.OrderID, event.OrderID)
	assert.Equal(t, 7, event.RemainingStock)
	assert.NotEmpty(t, event.EventID)
}

func TestPlaceOrder_ExactStockThenInsufficient(t *testing.T) {
	store := newMemStore()
	svc := newOrderService(store, nil)
	seedProduct(t, store, "prod-1", "USB-C Cable", 9.99, 5)

	actor := domain.Identity{UserID: "user-1", Role: domain.RoleCustomer}

	result, err := svc.PlaceOrder(context.Background(), actor, "prod-1", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, result.NewStock)
	assert.Equal(t, 0, store.stockOf("prod-1"))

	result, err = svc.PlaceOrder(context.Background(), actor, "prod-1", 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.PreviousStock)
	assert.Nil(t, result.Order)

	// Failed placement leaves no trace.
	assert.Equal(t, 0, store.stockOf("prod-1"))
	assert.Equal(t, 1, store.orderCount())
}

func TestPlaceOrder_InsufficientStockLeavesStateUntouched(t *testing.T) {
	store := newMemStore()
	publisher := &capturePublisher{}
	svc := newOrderService(store, publisher)
	seedProduct(t, store, "prod-1", "Wireless Headphones", 99.99, 2)

	actor := domain.Identity{UserID: "user-1", Role: domain.RoleCustomer}
	result, err := svc.PlaceOrder(context.Background(), actor, "prod-1", 3)

	assert.ErrorIs(t, err, ErrInsufficientStock)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.PreviousStock)
	assert.Equal(t, 2, store.stockOf("prod-1"))
	assert.Equal(t, 0, store.orderCount())
	assert.Empty(t, publisher.events)
}

func TestPlaceOrder_NonPositiveQuantityRejected(t *testing.T) {
	store := newMemStore()
	svc := newOrderService(store, nil)
	seedProduct(t, store, "prod-1", "Sample Phone", 599.99, 10)

	actor := domain.Identity{UserID: "user-1", Role: domain.RoleCustomer}

	for _, qty := range []int{0, -1, -50} {
		result, err := svc.PlaceOrder(context.Background(), actor, "prod-1", qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Nil(t, result)
	}

	assert.Equal(t, 10, store.stockOf("prod-1"))
	assert.Equal(t, 0, store.orderCount())
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	store := newMemStore()
	svc := newOrderService(store, nil)

	actor := domain.Identity{UserID: "user-1", Role: domain.RoleCustomer}
	result, err := svc.PlaceOrder(context.Background(), actor, "missing", 1)

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, result)
	assert.Equal(t, 0, store.orderCount())
}

func TestPlaceOrder_PublisherFailureDoesNotFailOrder(t *testing.T) {
	store := newMemStore()
	publisher := &capturePublisher{fail: true}
	svc := newOrderService(store, publisher)
	seedProduct(t, store, "prod-1", "Sample Phone", 599.99, 10)

	actor := domain.Identity{UserID: "user-1", Role: domain.RoleCustomer}
	result, err := svc.PlaceOrder(context.Background(), actor, "prod-1", 2)

	require.NoError(t, err)
	require.NotNil(t, result.Order)
	assert.Equal(t, 8, store.stockOf("prod-1"))
}

func TestListOrders_AdminSeesAllOthersSeeOwn(t *testing.T) {
	store := newMemStore()
	svc := newOrderService(store, nil)
	seedProduct(t, store, "prod-1", "Sample Phone", 599.99, 100)

	alice := domain.Identity{UserID: "alice", Role: domain.RoleCustomer}
	bob := domain.Identity{UserID: "bob", Role: domain.RoleCustomer}
	admin := domain.Identity{UserID: "root", Role: domain.RoleAdmin}

	for i := 0; i < 2; i++ {
		_, err := svc.PlaceOrder(context.Background(), alice, "prod-1", 1)
		require.NoError(t, err)
	}
	_, err := svc.PlaceOrder(context.Background(), bob, "prod-1", 1)
	require.NoError(t, err)

	own, err := svc.ListOrders(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, own, 2)
	for _, o := range own {
		assert.Equal(t, "alice", o.UserID)
	}

	all, err := svc.ListOrders(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Newest first.
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i-1].CreatedAt.Before(all[i].CreatedAt))
	}
}

func TestGetOrder_OwnershipGate(t *testing.T) {
	store := newMemStore()
	svc := newOrderService(store, nil)
	seedProduct(t, store, "prod-1", "Sample Phone", 599.99, 10)

	alice := domain.Identity{UserID: "alice", Role: domain.RoleCustomer}
	bob := domain.Identity{UserID: "bob", Role: domain.RoleCustomer}
	admin := domain.Identity{UserID: "root", Role: domain.RoleAdmin}

	result, err := svc.PlaceOrder(context.Background(), alice, "prod-1", 1)
	require.NoError(t, err)
	orderID := result.Order.OrderID

	got, err := svc.GetOrder(context.Background(), alice, orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, got.OrderID)

	_, err = svc.GetOrder(context.Background(), bob, orderID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetOrder(context.Background(), admin, orderID)
	assert.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), alice, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
