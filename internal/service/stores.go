package service

import (
	"context"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
)

// Store interfaces sit between the services and the DynamoDB repositories so
// tests can run against in-memory implementations.

type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

type ProductStore interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}

type OrderStore interface {
	PlaceOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)
}

// OrderEventPublisher receives the post-commit order event. Implemented by
// events.KafkaProducer; nil-safe at the call site so events stay optional.
type OrderEventPublisher interface {
	PublishOrderPlaced(event events.OrderPlacedEvent) error
}
