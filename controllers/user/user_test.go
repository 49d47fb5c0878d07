package userController_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	userController "bookapi/controllers/user"
	"bookapi/middleware"
	"bookapi/models"
	"bookapi/routers/userRoutes"
)

const testJWTKey = "test-secret"

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Book{}, &models.Review{}))

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	userRoutes.SetupUserRoutes(app, userController.New(db, testJWTKey, bcrypt.MinCost), testJWTKey)
	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, path, body, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type authBody struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func register(t *testing.T, app *fiber.App, name, email, password string) authBody {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password)
	resp := doRequest(t, app, "POST", "/api/users", body, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out authBody
	decodeBody(t, resp, &out)
	return out
}

func TestRegister(t *testing.T) {
	app, db := setupApp(t)

	out := register(t, app, "Alice", "alice@example.com", "correcthorse")
	assert.Equal(t, "Alice", out.Name)
	assert.Equal(t, "alice@example.com", out.Email)
	assert.False(t, out.IsAdmin)
	assert.NotEmpty(t, out.Token)

	// The stored password is a hash, never the plaintext
	var user models.User
	require.NoError(t, db.First(&user, out.ID).Error)
	assert.NotEqual(t, "correcthorse", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("correcthorse")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := setupApp(t)
	register(t, app, "Alice", "alice@example.com", "correcthorse")

	resp := doRequest(t, app, "POST", "/api/users",
		`{"name":"Imposter","email":"alice@example.com","password":"correcthorse"}`, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "User already exists", body["error"])
}

func TestRegisterValidation(t *testing.T) {
	app, _ := setupApp(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@example.com","password":"correcthorse"}`},
		{"bad email", `{"name":"Alice","email":"nope","password":"correcthorse"}`},
		{"short password", `{"name":"Alice","email":"a@example.com","password":"short"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, "POST", "/api/users", tc.body, "")
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLogin(t *testing.T) {
	app, _ := setupApp(t)
	register(t, app, "Alice", "alice@example.com", "correcthorse")

	resp := doRequest(t, app, "POST", "/api/users/login",
		`{"email":"alice@example.com","password":"correcthorse"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out authBody
	decodeBody(t, resp, &out)
	assert.Equal(t, "Alice", out.Name)
	assert.NotEmpty(t, out.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := setupApp(t)
	register(t, app, "Alice", "alice@example.com", "correcthorse")

	resp := doRequest(t, app, "POST", "/api/users/login",
		`{"email":"alice@example.com","password":"wrongpassword"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/users/login",
		`{"email":"nobody@example.com","password":"correcthorse"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetProfile(t *testing.T) {
	app, _ := setupApp(t)
	out := register(t, app, "Alice", "alice@example.com", "correcthorse")

	// The token issued at registration authenticates profile reads
	resp := doRequest(t, app, "GET", fmt.Sprintf("/api/users/%d", out.ID), "", out.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary models.UserSummary
	decodeBody(t, resp, &summary)
	assert.Equal(t, "Alice", summary.Name)

	resp = doRequest(t, app, "GET", fmt.Sprintf("/api/users/%d", out.ID), "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/users/abc", "", out.Token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/users/9999", "", out.Token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateProfile(t *testing.T) {
	app, _ := setupApp(t)
	out := register(t, app, "Alice", "alice@example.com", "correcthorse")

	resp := doRequest(t, app, "PUT", fmt.Sprintf("/api/users/%d", out.ID),
		`{"name":"Alice Cooper","password":"betterhorse99"}`, out.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated authBody
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Alice Cooper", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.NotEmpty(t, updated.Token)

	// Old password no longer works, the new one does
	resp = doRequest(t, app, "POST", "/api/users/login",
		`{"email":"alice@example.com","password":"correcthorse"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/users/login",
		`{"email":"alice@example.com","password":"betterhorse99"}`, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
