package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type OrderService struct {
	orderStore   OrderStore
	productStore ProductStore
	publisher    OrderEventPublisher
	logger       *zap.Logger
}

func NewOrderService(orderStore OrderStore, productStore ProductStore, publisher OrderEventPublisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderStore:   orderStore,
		productStore: productStore,
		publisher:    publisher,
		logger:       logger,
	}
}

// PlaceOrder creates an order for the acting user and decrements the product
// stock by the same quantity in one transaction. On ErrInsufficientStock the
// result still carries PreviousStock so callers can report availability;
// stock is left untouched and no order row exists.
func (s *OrderService) PlaceOrder(ctx context.Context, actor domain.Identity, productID string, quantity int) (*domain.PlaceOrderResult, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productStore.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	result := &domain.PlaceOrderResult{
		PreviousStock: product.Stock,
	}

	order := &domain.Order{
		OrderID:     uuid.NewString(),
		UserID:      actor.UserID,
		ProductID:   product.ProductID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    quantity,
		CreatedAt:   time.Now(),
	}

	if err := s.orderStore.PlaceOrder(ctx, order); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return result, ErrInsufficientStock
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("Failed to place order",
			zap.String("product_id", productID),
			zap.String("user_id", actor.UserID),
			zap.Error(err))
		return nil, err
	}

	result.Order = order
	result.NewStock = result.PreviousStock - quantity

	s.logger.Info("Order placed successfully",
		zap.String("order_id", order.OrderID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("previous_stock", result.PreviousStock),
		zap.Int("new_stock", result.NewStock))

	s.publishOrderPlaced(order, result.NewStock)

	return result, nil
}

// ListOrders returns the order history visible to the acting user: Admins see
// the whole ledger, everyone else only their own orders. Newest first.
func (s *OrderService) ListOrders(ctx context.Context, actor domain.Identity) ([]domain.Order, error) {
	var (
		orders []domain.Order
		err    error
	)
	if actor.Role == domain.RoleAdmin {
		orders, err = s.orderStore.ListAllOrders(ctx)
	} else {
		orders, err = s.orderStore.ListOrdersByUser(ctx, actor.UserID)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

// GetOrder returns a single order, restricted to its owner or an Admin.
func (s *OrderService) GetOrder(ctx context.Context, actor domain.Identity, orderID string) (*domain.Order, error) {
	order, err := s.orderStore.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if actor.Role != domain.RoleAdmin && order.UserID != actor.UserID {
		return nil, ErrForbidden
	}

	return order, nil
}

// publishOrderPlaced is best-effort: a broker outage must not fail an order
// that already committed.
func (s *OrderService) publishOrderPlaced(order *domain.Order, remainingStock int) {
	if s.publisher == nil {
		return
	}

	event := events.OrderPlacedEvent{
		EventID:        uuid.NewString(),
		OrderID:        order.OrderID,
		UserID:         order.UserID,
		ProductID:      order.ProductID,
		ProductName:    order.ProductName,
		Quantity:       order.Quantity,
		UnitPrice:      order.UnitPrice,
		RemainingStock: remainingStock,
		Timestamp:      order.CreatedAt,
	}

	if err := s.publisher.PublishOrderPlaced(event); err != nil {
		s.logger.Warn("Failed to publish order event",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}
}
