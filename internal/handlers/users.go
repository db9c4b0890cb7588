package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/imyashkale/kubegate/internal/models"
	"github.com/imyashkale/kubegate/internal/repository"
	"github.com/imyashkale/kubegate/internal/services"
)

// UserHandler handles user management and current-user requests
type UserHandler struct {
	users repository.UserRepository
	auth  *services.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users repository.UserRepository, auth *services.AuthService) *UserHandler {
	return &UserHandler{
		users: users,
		auth:  auth,
	}
}

// Me returns the authenticated caller's profile
func (h *UserHandler) Me(c *gin.Context) {
	username, ok := callerUsername(c)
	if !ok {
		return
	}

	user, err := h.users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to load user",
		})
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// List returns every user. Admin only.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to list users",
		})
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"all_users": responses})
}

// Create adds a new user. Admin only. The password may arrive pre-hashed.
func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}

	hashedPassword := req.Password
	if !req.IsHashed {
		hashedPassword, err = h.auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Failed to hash password",
			})
			return
		}
	}

	user := &models.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Disabled:       req.Disabled,
		Role:           role,
	}

	if err := h.users.Add(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Username already taken",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to create user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "Success"})
}

// Get returns one user by id. Admin only.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "user_id must be an integer",
		})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "No user with id " + c.Param("user_id") + " in database",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to load user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

// Delete removes one user by id. Admin only.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "user_id must be an integer",
		})
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "No user with id " + c.Param("user_id") + " in database",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to delete user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "Success"})
}
