package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrForbidden       = errors.New("operation not permitted for this user")
	ErrInvalidInput    = errors.New("invalid input")
)

type ProductService struct {
	productStore ProductStore
	logger       *zap.Logger
}

func NewProductService(productStore ProductStore, logger *zap.Logger) *ProductService {
	return &ProductService{
		productStore: productStore,
		logger:       logger,
	}
}

// CreateProduct lists a new product owned by the acting user. Customers may
// not list products.
func (s *ProductService) CreateProduct(ctx context.Context, actor domain.Identity, req domain.CreateProductRequest) (*domain.Product, error) {
	if actor.Role != domain.RoleSeller && actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if req.Price < 0 || req.Stock < 0 {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	product := &domain.Product{
		ProductID: uuid.NewString(),
		Name:      name,
		NameLower: strings.ToLower(name),
		Price:     req.Price,
		Stock:     req.Stock,
		SellerID:  actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.productStore.CreateProduct(ctx, product); err != nil {
		s.logger.Error("Failed to save product",
			zap.String("product_id", product.ProductID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created successfully",
		zap.String("product_id", product.ProductID),
		zap.String("seller_id", product.SellerID),
		zap.Int("initial_stock", product.Stock))

	return product, nil
}

// UpdateProduct applies a partial edit. Only an Admin or the owning Seller
// may edit; anyone else gets ErrForbidden regardless of the payload.
func (s *ProductService) UpdateProduct(ctx context.Context, actor domain.Identity, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !canEditProduct(actor, product) {
		return nil, ErrForbidden
	}

	if req.Empty() {
		return nil, ErrInvalidInput
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		product.Name = name
		product.NameLower = strings.ToLower(name)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidInput
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, ErrInvalidInput
		}
		product.Stock = *req.Stock
	}
	product.UpdatedAt = time.Now()

	if err := s.productStore.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("Failed to update product",
			zap.String("product_id", productID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product updated",
		zap.String("product_id", productID),
		zap.String("actor_id", actor.UserID))

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productStore.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// ListProducts returns the catalog newest-first, optionally filtered by name
// substring and price range.
func (s *ProductService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	filter.Query = strings.ToLower(strings.TrimSpace(filter.Query))
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, ErrInvalidInput
	}

	products, err := s.productStore.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	return products, nil
}

// canEditProduct is the ownership gate: Admins edit anything, Sellers only
// their own listings.
func canEditProduct(actor domain.Identity, product *domain.Product) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleSeller:
		return product.SellerID == actor.UserID
	default:
		return false
	}
}
