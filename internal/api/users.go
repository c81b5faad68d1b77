package api

import (
	"errors"   // Sentinel error checks
	"net/http" // HTTP status codes
	"strconv"  // Path parameter conversion

	"cryptomarket/internal/service"  // User CRUD flows
	"cryptomarket/internal/validate" // Input schemas

	"github.com/gin-gonic/gin" // Gin web framework
)

// User-facing messages kept from the original API
const (
	msgUsersNotFound = "Usuário(s) não encontrado(s)"
	msgUserExists    = "Usuário ja existe"
	msgInvalidBody   = "Corpo da requisição inválido"
	msgInvalidID     = "O id deve ser um número"
)

// UpdateUserResponse echoes only the updatable fields
type UpdateUserResponse struct {
	Name  string `json:"name"`  // Display name
	Email string `json:"email"` // Email
	Role  string `json:"role"`  // Role
}

// FindUsersHandler lists users matching the query filter
func FindUsersHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ferrs := validate.FilterUsers(c.Request.URL.RawQuery)
		if ferrs != nil {
			// Structured per-field errors, one entry per failed rule
			c.JSON(http.StatusBadRequest, ferrs)
			return
		}
		found, err := users.FindUsersByFilter(in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "message": err.Error()})
			return
		}
		if len(found) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": msgUsersNotFound})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": found})
	}
}

// CreateUserHandler registers a new user account
func CreateUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw map[string]any // Decoded as a map so strict mode can see every key
		if err := c.ShouldBindJSON(&raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
			return
		}
		in, ferrs := validate.CreateUser(raw)
		if ferrs != nil {
			c.JSON(http.StatusBadRequest, ferrs)
			return
		}
		created, err := users.CreateUser(in)
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgUserExists})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, created) // json tags keep the password out
	}
}

// UpdateUserHandler applies a partial update to a user
func UpdateUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidID})
			return
		}
		var raw map[string]any
		if err := c.ShouldBindJSON(&raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
			return
		}
		in, ferrs := validate.UpdateUser(raw)
		if ferrs != nil {
			c.JSON(http.StatusBadRequest, ferrs)
			return
		}
		updated, err := users.UpdateUser(uint(id), in)
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgUsersNotFound})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, UpdateUserResponse{
			Name:  updated.Name,
			Email: updated.Email,
			Role:  updated.Role,
		})
	}
}
