package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
)

// memStore is an in-memory stand-in for the DynamoDB repositories. It
// implements UserStore, ProductStore and OrderStore and mirrors their
// sentinel errors, including the guarded decrement in PlaceOrder.
type memStore struct {
	mu       sync.Mutex
	users    map[string]domain.User
	products map[string]domain.Product
	orders   map[string]domain.Order
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]domain.User),
		products: make(map[string]domain.Product),
		orders:   make(map[string]domain.Order),
	}
}

func (m *memStore) CreateUser(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.UserID] = *user
	return nil
}

func (m *memStore) GetUser(_ context.Context, userID string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memStore) CreateProduct(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ProductID] = *product
	return nil
}

func (m *memStore) GetProduct(_ context.Context, productID string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (m *memStore) UpdateProduct(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ProductID]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[product.ProductID] = *product
	return nil
}

func (m *memStore) ListProducts(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Product
	for _, p := range m.products {
		if filter.Query != "" && !strings.Contains(p.NameLower, filter.Query) {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) PlaceOrder(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[order.ProductID]
	if !ok {
		return repository.ErrProductNotFound
	}
	if p.Stock < order.Quantity {
		return repository.ErrInsufficientStock
	}
	p.Stock -= order.Quantity
	p.UpdatedAt = order.CreatedAt
	m.products[order.ProductID] = p
	m.orders[order.OrderID] = *order
	return nil
}

func (m *memStore) GetOrder(_ context.Context, orderID string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return &o, nil
}

func (m *memStore) ListOrdersByUser(_ context.Context, userID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memStore) ListAllOrders(_ context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *memStore) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

func (m *memStore) stockOf(productID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[productID].Stock
}

// capturePublisher records published events; fail makes every publish error.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.OrderPlacedEvent
	fail   bool
}

func (p *capturePublisher) PublishOrderPlaced(event events.OrderPlacedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, event)
	return nil
}
