package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"mart/internal/apperrors"
	"mart/internal/handlers"
	"mart/internal/models"
	"mart/internal/repositories"
	"mart/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}))

	userRepo := repositories.NewGORMUserRepository(db)
	userService := services.NewUserService(userRepo)
	userHandler := handlers.NewUserHandler(userService)

	app := fiber.New()
	api := app.Group("/api")
	userHandler.RegisterRoutes(api)
	return app
}

func decodeUser(t *testing.T, resp *http.Response) models.User {
	t.Helper()
	var user models.User
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	resp.Body.Close()
	return user
}

func TestUserCRUD(t *testing.T) {
	app := setupUserApp(t)

	// Create
	resp := postJSON(t, app, "/api/users", map[string]any{
		"name":    "Alice",
		"email":   "alice@example.com",
		"address": "1 Main St",
		"phone":   "555-0100",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeUser(t, resp)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "alice@example.com", created.Email)

	// Read
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Alice", decodeUser(t, resp).Name)

	// List
	resp = doRequest(t, app, http.MethodGet, "/api/users")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var users []models.User
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	resp.Body.Close()
	assert.Len(t, users, 1)

	// Update
	resp = putJSON(t, app, fmt.Sprintf("/api/users/%d", created.ID), map[string]any{
		"name":    "Alice B",
		"email":   "alice@example.com",
		"address": "2 Oak Ave",
		"phone":   "555-0101",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeUser(t, resp)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "2 Oak Ave", updated.Address)

	// Delete
	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	app := setupUserApp(t)

	body := map[string]any{
		"name":    "Alice",
		"email":   "alice@example.com",
		"address": "1 Main St",
		"phone":   "555-0100",
	}
	resp := postJSON(t, app, "/api/users", body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	body["name"] = "Another Alice"
	resp = postJSON(t, app, "/api/users", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody apperrors.Response
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	resp.Body.Close()
	assert.Equal(t, apperrors.CodeEmailTaken, errBody.Code)

	// Only the first user exists.
	resp = doRequest(t, app, http.MethodGet, "/api/users")
	var users []models.User
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	resp.Body.Close()
	assert.Len(t, users, 1)
}

func TestUpdateUser_EmailTaken(t *testing.T) {
	app := setupUserApp(t)

	resp := postJSON(t, app, "/api/users", map[string]any{
		"name": "Alice", "email": "alice@example.com", "address": "1 Main St", "phone": "555-0100",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/users", map[string]any{
		"name": "Bob", "email": "bob@example.com", "address": "2 Oak Ave", "phone": "555-0101",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	bob := decodeUser(t, resp)

	resp = putJSON(t, app, fmt.Sprintf("/api/users/%d", bob.ID), map[string]any{
		"name": "Bob", "email": "alice@example.com", "address": "2 Oak Ave", "phone": "555-0101",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody apperrors.Response
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	resp.Body.Close()
	assert.Equal(t, apperrors.CodeEmailTaken, errBody.Code)
}

func TestCreateUser_Validation(t *testing.T) {
	app := setupUserApp(t)

	// Missing name and malformed email
	resp := postJSON(t, app, "/api/users", map[string]any{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]any
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, string(apperrors.CodeValidationFailed), body["code"])
}

func TestUpdateUser_NotFound(t *testing.T) {
	app := setupUserApp(t)

	resp := putJSON(t, app, "/api/users/999", map[string]any{
		"name": "Ghost", "email": "ghost@example.com", "address": "Nowhere", "phone": "555-0000",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
