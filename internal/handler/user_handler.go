package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/invmanage/inventory-service/internal/model"
	"github.com/invmanage/inventory-service/internal/store"
	"github.com/invmanage/inventory-service/pkg/logger"
	"github.com/invmanage/inventory-service/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// UserRequest defines the structure for user creation/update requests
type UserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// ListUsers returns all users
func ListUsers(c echo.Context) error {
	log := logger.FromEcho(c)

	s := store.Active()
	if err := s.InitializeData(); err != nil {
		log.Error("Failed to initialize sample data", zap.Error(err))
		return storageError(c, "Failed to fetch users", err)
	}

	users, err := s.Users()
	if err != nil {
		log.Error("Failed to retrieve users", zap.Error(err))
		return storageError(c, "Failed to fetch users", err)
	}

	prometheus.UserOperationsCounter.WithLabelValues("list").Inc()
	return c.JSON(http.StatusOK, users)
}

// CreateUser adds a new user
func CreateUser(c echo.Context) error {
	log := logger.FromEcho(c)

	var req UserRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	name := ""
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "User name is required"})
	}
	email := ""
	if req.Email != nil {
		email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is required"})
	}
	if !emailPattern.MatchString(email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Please provide a valid email"})
	}
	role := model.RoleUser
	if req.Role != nil && *req.Role != "" {
		role = *req.Role
		if !model.ValidRole(role) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid role"})
		}
	}

	s := store.Active()
	users, err := s.Users()
	if err != nil {
		log.Error("Failed to retrieve users", zap.Error(err))
		return storageError(c, "Failed to create user", err)
	}
	for i := range users {
		if users[i].Email == email {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "User with this email already exists"})
		}
	}

	user, err := s.AddUser(model.UserInput{Name: name, Email: email, Role: role})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "User with this email already exists"})
		}
		log.Error("Failed to create user", zap.String("email", email), zap.Error(err))
		return storageError(c, "Failed to create user", err)
	}

	log.Info("User created successfully",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role))
	prometheus.UserOperationsCounter.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser updates an existing user
func UpdateUser(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	if !model.ValidID(id) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	var req UserRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("user_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var upd model.UserUpdate
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "User name cannot be empty"})
		}
		upd.Name = &name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailPattern.MatchString(email) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Please provide a valid email"})
		}
		upd.Email = &email
	}
	if req.Role != nil {
		if !model.ValidRole(*req.Role) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid role"})
		}
		upd.Role = req.Role
	}

	user, err := store.Active().UpdateUser(id, upd)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		case errors.Is(err, store.ErrConflict):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "User with this email already exists"})
		}
		log.Error("Failed to update user", zap.String("user_id", id), zap.Error(err))
		return storageError(c, "Failed to update user", err)
	}

	log.Info("User updated successfully", zap.String("user_id", id))
	prometheus.UserOperationsCounter.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, user)
}

// DeleteUser deletes a user
func DeleteUser(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	if !model.ValidID(id) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	deleted, err := store.Active().DeleteUser(id)
	if err != nil {
		log.Error("Failed to delete user", zap.String("user_id", id), zap.Error(err))
		return storageError(c, "Failed to delete user", err)
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	log.Info("User deleted successfully", zap.String("user_id", id))
	prometheus.UserOperationsCounter.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}
