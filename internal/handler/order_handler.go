package handler

import (
	"errors"
	"net/http"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req domain.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.orderService.PlaceOrder(c.Request.Context(), identity, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive integer"})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, service.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{
				"error":     "Insufficient stock",
				"available": result.PreviousStock,
				"requested": req.Quantity,
			})
		default:
			h.logger.Error("Failed to place order",
				zap.String("product_id", req.ProductID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListOrders: Admins see every order, other users only their own.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), identity)
	if err != nil {
		h.logger.Error("Failed to list orders",
			zap.String("user_id", identity.UserID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	orderID := c.Param("id")

	order, err := h.orderService.GetOrder(c.Request.Context(), identity, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this order"})
		default:
			h.logger.Error("Failed to get order",
				zap.String("order_id", orderID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order"})
		}
		return
	}

	c.JSON(http.StatusOK, order)
}
