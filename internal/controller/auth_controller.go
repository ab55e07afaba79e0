package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-auth-api/internal/middleware"
	"user-auth-api/internal/repository"
	"user-auth-api/internal/service"
	"user-auth-api/internal/utils"
	"user-auth-api/pkg/logger"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	authService service.AuthService
	logger      logger.Logger
}

func NewAuthController(
	authService service.AuthService,
	logger logger.Logger,
) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger.With(zap.String("module", "auth_controller")),
	}
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "username, email and password are required")
		return
	}

	token, user, err := c.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserConflict) {
			utils.Error(ctx, http.StatusConflict, "username or email already exists")
			return
		}
		c.logger.Error("register failed", zap.String("username", req.Username), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, "internal server error")
		return
	}

	c.logger.Info("user registered", zap.Int("id", user.ID), zap.String("username", user.Username))
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "user registered successfully",
		"token":   token,
		"user":    user.Public(),
	})
}

// Login handles POST /api/auth/login. Unknown email and wrong password get
// the same response so the endpoint cannot be used to enumerate accounts.
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "email and password are required")
		return
	}

	token, user, err := c.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.logger.Warn("login rejected", zap.String("email", req.Email))
			utils.Error(ctx, http.StatusUnauthorized, "invalid credentials")
			return
		}
		c.logger.Error("login failed", zap.String("email", req.Email), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.Success(ctx, gin.H{
		"message": "login successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// Profile handles GET /api/auth/profile. The record can disappear while a
// token for it is still valid, hence the 404 path.
func (c *AuthController) Profile(ctx *gin.Context) {
	claims := middleware.CurrentClaims(ctx)

	user, err := c.authService.Profile(claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.Error(ctx, http.StatusNotFound, "user not found")
			return
		}
		c.logger.Error("profile lookup failed", zap.Int("id", claims.ID), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.Success(ctx, gin.H{"user": user.Public()})
}

// Verify handles GET /api/auth/verify. Reaching this handler means the guard
// already accepted the token, so it only echoes the identity back.
func (c *AuthController) Verify(ctx *gin.Context) {
	claims := middleware.CurrentClaims(ctx)

	utils.Success(ctx, gin.H{
		"valid": true,
		"user": gin.H{
			"id":       claims.ID,
			"username": claims.Username,
			"email":    claims.Email,
		},
	})
}
