package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-auth-api/internal/middleware"
	"user-auth-api/internal/model"
	"user-auth-api/internal/repository"
	"user-auth-api/internal/service"
	"user-auth-api/internal/utils"
	"user-auth-api/pkg/logger"
)

type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,username"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

type UserController struct {
	userService service.UserService
	logger      logger.Logger
}

func NewUserController(
	userService service.UserService,
	logger logger.Logger,
) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger.With(zap.String("module", "user_controller")),
	}
}

// List handles GET /api/users. Flat dump of every record, hashes stripped.
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.userService.ListUsers()
	if err != nil {
		c.logger.Error("user list failed", zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, "internal server error")
		return
	}

	public := make([]model.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	utils.Success(ctx, gin.H{"users": public})
}

// Get handles GET /api/users/:id.
func (c *UserController) Get(ctx *gin.Context) {
	id, ok := parseUserID(ctx)
	if !ok {
		return
	}

	user, err := c.userService.GetUser(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.Error(ctx, http.StatusNotFound, "user not found")
			return
		}
		c.logger.Error("user lookup failed", zap.Int("id", id), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.Success(ctx, gin.H{"user": user.Public()})
}

// Update handles PUT /api/users/:id. Only the owner or an admin may update a
// record; absent fields are left unchanged.
func (c *UserController) Update(ctx *gin.Context) {
	id, ok := parseUserID(ctx)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid update fields")
		return
	}

	claims := middleware.CurrentClaims(ctx)
	user, err := c.userService.UpdateUser(claims, id, service.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			utils.Error(ctx, http.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrForbidden):
			utils.Error(ctx, http.StatusForbidden, "you are not allowed to edit this user")
		case errors.Is(err, service.ErrUserConflict):
			utils.Error(ctx, http.StatusConflict, "username or email already exists")
		default:
			c.logger.Error("user update failed", zap.Int("id", id), zap.Error(err))
			utils.Error(ctx, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.logger.Info("user updated", zap.Int("id", id), zap.Int("actor", claims.ID))
	utils.Success(ctx, gin.H{
		"message": "user updated successfully",
		"user":    user.Public(),
	})
}

// Delete handles DELETE /api/users/:id. Same ownership rule as Update. The
// user's outstanding tokens stay valid until they expire.
func (c *UserController) Delete(ctx *gin.Context) {
	id, ok := parseUserID(ctx)
	if !ok {
		return
	}

	claims := middleware.CurrentClaims(ctx)
	if err := c.userService.DeleteUser(claims, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			utils.Error(ctx, http.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrForbidden):
			utils.Error(ctx, http.StatusForbidden, "you are not allowed to delete this user")
		default:
			c.logger.Error("user delete failed", zap.Int("id", id), zap.Error(err))
			utils.Error(ctx, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.logger.Info("user deleted", zap.Int("id", id), zap.Int("actor", claims.ID))
	utils.Success(ctx, gin.H{"message": "user deleted successfully"})
}

func parseUserID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}
