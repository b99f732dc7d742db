package handler

import (
	"net/http"
	"testing"

	"github.com/invmanage/inventory-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserValidation(t *testing.T) {
	setupStore(t)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing name", `{"email":"a@b.com"}`, "User name is required"},
		{"blank name", `{"name":"  ","email":"a@b.com"}`, "User name is required"},
		{"missing email", `{"name":"Ann"}`, "Email is required"},
		{"bad email", `{"name":"Ann","email":"not-an-email"}`, "Please provide a valid email"},
		{"bad role", `{"name":"Ann","email":"a@b.com","role":"owner"}`, "Invalid role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := invoke(t, CreateUser, http.MethodPost, "/api/users", tt.body, "", nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, rec))
		})
	}
}

func TestCreateUserNormalizesEmailAndDefaultsRole(t *testing.T) {
	setupStore(t)

	rec := invoke(t, CreateUser, http.MethodPost, "/api/users",
		`{"name":"Ann","email":"  Ann@Example.COM "}`, "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var user model.User
	decode(t, rec, &user)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	setupStore(t)

	rec := invoke(t, CreateUser, http.MethodPost, "/api/users",
		`{"name":"Ann","email":"ann@example.com"}`, "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = invoke(t, CreateUser, http.MethodPost, "/api/users",
		`{"name":"Another Ann","email":"ANN@example.com"}`, "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User with this email already exists", errorMessage(t, rec))
}

func TestUpdateUser(t *testing.T) {
	s := setupStore(t)
	user, err := s.AddUser(model.UserInput{Name: "Ann", Email: "ann@example.com", Role: model.RoleUser})
	require.NoError(t, err)

	rec := invoke(t, UpdateUser, http.MethodPut, "/api/users/"+user.ID,
		`{"role":"admin"}`, "", map[string]string{"id": user.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.User
	decode(t, rec, &updated)
	assert.Equal(t, model.RoleAdmin, updated.Role)
	assert.Equal(t, "Ann", updated.Name, "absent fields are untouched")

	rec = invoke(t, UpdateUser, http.MethodPut, "/api/users/"+user.ID,
		`{"name":""}`, "", map[string]string{"id": user.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User name cannot be empty", errorMessage(t, rec))

	rec = invoke(t, UpdateUser, http.MethodPut, "/api/users/x",
		`{"role":"admin"}`, "", map[string]string{"id": model.NewID()})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", errorMessage(t, rec))
}

func TestDeleteUser(t *testing.T) {
	s := setupStore(t)
	user, err := s.AddUser(model.UserInput{Name: "Ann", Email: "ann@example.com", Role: model.RoleUser})
	require.NoError(t, err)

	rec := invoke(t, DeleteUser, http.MethodDelete, "/api/users/short", "", "",
		map[string]string{"id": "short"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid user ID", errorMessage(t, rec))

	rec = invoke(t, DeleteUser, http.MethodDelete, "/api/users/"+user.ID, "", "",
		map[string]string{"id": user.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = invoke(t, DeleteUser, http.MethodDelete, "/api/users/"+user.ID, "", "",
		map[string]string{"id": user.ID})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", errorMessage(t, rec))
}
