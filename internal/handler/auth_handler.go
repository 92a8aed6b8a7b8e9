package handler

import (
	"errors"
	"net/http"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/auth"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService *service.UserService
	issuer      *auth.TokenIssuer
	logger      *zap.Logger
}

func NewAuthHandler(userService *service.UserService, issuer *auth.TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		issuer:      issuer,
		logger:      logger,
	}
}

// Register creates an account and logs the new user straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Username or email already in use",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidRole) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Role must be Customer, Seller or Admin",
			})
			return
		}

		h.logger.Error("Failed to register user",
			zap.String("username", req.Username),
			zap.Error(err))

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to register user",
		})
		return
	}

	token, err := h.issuer.Mint(user)
	if err != nil {
		h.logger.Error("Failed to mint token",
			zap.String("user_id", user.UserID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to register user",
		})
		return
	}

	c.JSON(http.StatusCreated, domain.AuthResponse{
		Token: token,
		User:  domain.NewUserResponse(user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
			return
		}

		h.logger.Error("Failed to authenticate user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to log in",
		})
		return
	}

	token, err := h.issuer.Mint(user)
	if err != nil {
		h.logger.Error("Failed to mint token",
			zap.String("user_id", user.UserID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to log in",
		})
		return
	}

	c.JSON(http.StatusOK, domain.AuthResponse{
		Token: token,
		User:  domain.NewUserResponse(user),
	})
}

// Me returns the profile behind the bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		h.logger.Error("Failed to load user",
			zap.String("user_id", identity.UserID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	c.JSON(http.StatusOK, domain.NewUserResponse(user))
}
