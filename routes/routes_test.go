package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"merchline/config"
	"merchline/db"
	"merchline/mailer"
	"merchline/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	db.DB = gdb
	db.Migrate(gdb)

	SetMailer(mailer.LogMailer{})

	app := fiber.New()
	SetupRoutes(app, &config.Config{JWTSecret: "test-secret", UploadsDir: "uploads"})
	return app
}

func seedClientUser(t *testing.T, email string) (*models.Client, *models.Project, *models.Product) {
	t.Helper()

	client := &models.Client{CompanyName: "Acme Corp", PersonalName: "Jane Doe", PhoneNumber: "555-1234"}
	require.NoError(t, db.DB.Create(client).Error)

	project := &models.Project{ClientID: client.ID, Name: "Spring Merch", Status: models.ProjectStatusActive}
	require.NoError(t, db.DB.Create(project).Error)

	product := &models.Product{
		Name:         "Crew Neck Tee",
		BasePrice:    decimal.NewFromInt(100),
		MinimumOrder: 1,
		BulkPrices: []models.BulkPrice{
			{Qty: 5, Price: decimal.NewFromInt(90)},
			{Qty: 10, Price: decimal.NewFromInt(80)},
		},
		Sizes:  []string{"M", "L"},
		Colors: []models.Color{{Name: "Black", HexColor: "#000000"}},
	}
	require.NoError(t, db.DB.Create(product).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Email: email, Password: string(hash), Role: models.RoleClient, ClientID: &client.ID}
	require.NoError(t, db.DB.Create(user).Error)

	return client, project, product
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/login", "", fiber.Map{
		"email":    email,
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestOrderPlacementFlow(t *testing.T) {
	app := setupTestApp(t)
	_, project, product := seedClientUser(t, "jane@acme.example")
	token := login(t, app, "jane@acme.example")

	resp := doJSON(t, app, "POST", "/api/orders", token, fiber.Map{
		"project_id":    project.ID,
		"delivery_date": "2026-10-01",
		"order_items": []fiber.Map{
			{"product_id": product.ID, "color": "Black", "size": "M", "quantity": 3},
			{"product_id": product.ID, "color": "Black", "size": "L", "quantity": 7},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&order))
	assert.Equal(t, 10, order.TotalQuantity)
	// 10 units reach the 80 tier.
	assert.True(t, order.Price.Equal(decimal.NewFromInt(800)), "got %s", order.Price)
	assert.Len(t, order.OrderItems, 2)
}

func TestOrderPlacementValidationErrors(t *testing.T) {
	app := setupTestApp(t)
	_, project, product := seedClientUser(t, "jane@acme.example")
	token := login(t, app, "jane@acme.example")

	resp := doJSON(t, app, "POST", "/api/orders", token, fiber.Map{
		"project_id":    project.ID,
		"delivery_date": "2026-10-01",
		"order_items": []fiber.Map{
			{"product_id": product.ID, "color": "Neon Pink", "size": "M", "quantity": 3},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var orders int64
	db.DB.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)
}

func TestOrderPlacementRejectsForeignProject(t *testing.T) {
	app := setupTestApp(t)
	_, _, product := seedClientUser(t, "jane@acme.example")
	token := login(t, app, "jane@acme.example")

	other := &models.Client{CompanyName: "Other Co", PersonalName: "Bob", PhoneNumber: "555-0000"}
	require.NoError(t, db.DB.Create(other).Error)
	foreign := &models.Project{ClientID: other.ID, Name: "Foreign", Status: models.ProjectStatusActive}
	require.NoError(t, db.DB.Create(foreign).Error)

	resp := doJSON(t, app, "POST", "/api/orders", token, fiber.Map{
		"project_id":    foreign.ID,
		"delivery_date": "2026-10-01",
		"order_items": []fiber.Map{
			{"product_id": product.ID, "color": "Black", "size": "M", "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app := setupTestApp(t)
	seedClientUser(t, "jane@acme.example")
	token := login(t, app, "jane@acme.example")

	resp := doJSON(t, app, "GET", "/api/products", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestClientSeesOnlyActiveOwnProjects(t *testing.T) {
	app := setupTestApp(t)
	client, _, _ := seedClientUser(t, "jane@acme.example")
	token := login(t, app, "jane@acme.example")

	draft := &models.Project{ClientID: client.ID, Name: "Draft Line", Status: models.ProjectStatusDraft}
	require.NoError(t, db.DB.Create(draft).Error)

	resp := doJSON(t, app, "GET", "/api/projects/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body ProjectListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "Spring Merch", body.Projects[0].Name)
}
