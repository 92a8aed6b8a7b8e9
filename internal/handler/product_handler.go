package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	productService *service.ProductService
	logger         *zap.Logger
}

func NewProductHandler(productService *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// ListProducts is public. Filters: q (name substring), min, max (price range).
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := domain.ProductFilter{
		Query: c.Query("q"),
	}

	if raw := c.Query("min"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min price"})
			return
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("max"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max price"})
			return
		}
		filter.MaxPrice = &v
	}

	products, err := h.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price range"})
			return
		}

		h.logger.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	responses := make([]domain.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, domain.NewProductResponse(&products[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"products": responses,
		"count":    len(responses),
	})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID := c.Param("id")

	product, err := h.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		h.logger.Error("Failed to get product",
			zap.String("product_id", productID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, domain.NewProductResponse(product))
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), identity, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only sellers and admins can list products"})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product fields"})
		default:
			h.logger.Error("Failed to create product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}

	c.JSON(http.StatusCreated, domain.NewProductResponse(product))
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	productID := c.Param("id")

	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), identity, productID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to edit this product"})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product fields"})
		default:
			h.logger.Error("Failed to update product",
				zap.String("product_id", productID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		}
		return
	}

	c.JSON(http.StatusOK, domain.NewProductResponse(product))
}
