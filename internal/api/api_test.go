package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/durendeer/petcare/config"
	"github.com/durendeer/petcare/internal/domain"
	"github.com/durendeer/petcare/internal/notify"
	"github.com/durendeer/petcare/internal/webserver"
	"github.com/glebarez/sqlite"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testApp is a minimal AppContext for handler tests.
type testApp struct {
	db  *gorm.DB
	cfg *config.AppConfig
	bus EventBus.Bus
}

func (t *testApp) DB() *gorm.DB                 { return t.db }
func (t *testApp) Config() *config.AppConfig    { return t.cfg }
func (t *testApp) Bus() EventBus.Bus            { return t.bus }
func (t *testApp) Notifier() *notify.Dispatcher { return nil }
func (t *testApp) Scheduler() *cron.Cron        { return nil }
func (t *testApp) MigrateDB(track bool) error   { return nil }
func (t *testApp) InitDb()                      {}
func (t *testApp) DropAll()                     {}

var (
	setupOnce sync.Once
	testEcho  *echo.Echo
	testDB    *gorm.DB
)

func setupServer(t *testing.T) *echo.Echo {
	t.Helper()
	setupOnce.Do(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		if err != nil {
			panic(err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.AutoMigrate(domain.Tables...); err != nil {
			panic(err)
		}

		ws := webserver.Init(&testApp{
			db:  db,
			cfg: config.DefaultAppConfig,
			bus: EventBus.New(),
		})
		RegisterRoutes()
		testEcho = ws.Echo()
		testDB = db
	})
	return testEcho
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/register",
		`{"name":"Test User","email":"`+email+`","password":"secret123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/api/login",
		`{"email":"`+email+`","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	token := jsoniter.Get(rec.Body.Bytes(), "data", "token").ToString()
	require.NotEmpty(t, token)
	return token
}

// registerAdmin promotes a fresh account to admin level and logs in again so
// the token carries the admin claim.
func registerAdmin(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()
	registerAndLogin(t, e, email)
	require.NoError(t, testDB.Model(&domain.SysUser{}).
		Where("email = ?", email).Update("level", "admin").Error)

	rec := doJSON(e, http.MethodPost, "/api/login",
		`{"email":"`+email+`","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := jsoniter.Get(rec.Body.Bytes(), "data", "token").ToString()
	require.NotEmpty(t, token)
	return token
}

func TestRegisterValidation(t *testing.T) {
	e := setupServer(t)

	rec := doJSON(e, http.MethodPost, "/api/register",
		`{"name":"","email":"not-an-email","password":"123"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := setupServer(t)

	body := `{"name":"Dup","email":"dup@example.org","password":"secret123"}`
	rec := doJSON(e, http.MethodPost, "/api/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/register", body, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	e := setupServer(t)
	registerAndLogin(t, e, "badpass@example.org")

	rec := doJSON(e, http.MethodPost, "/api/login",
		`{"email":"badpass@example.org","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApiRequiresAuth(t *testing.T) {
	e := setupServer(t)

	rec := doJSON(e, http.MethodGet, "/api/pets", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPetLifecycle(t *testing.T) {
	e := setupServer(t)
	token := registerAndLogin(t, e, "petowner@example.org")

	rec := doJSON(e, http.MethodPost, "/api/pets",
		`{"name":"Rex","species":"dog","breed":"labrador","weight":"24.50"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	petID := jsoniter.Get(rec.Body.Bytes(), "data", "id").ToString()
	require.NotEmpty(t, petID)

	rec = doJSON(e, http.MethodPost, "/api/pets",
		`{"name":"Mystery","species":"dragon"}`, token)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/pets", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rex")

	rec = doJSON(e, http.MethodGet, "/api/pets/"+petID, "", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// another user cannot see it
	other := registerAndLogin(t, e, "stranger@example.org")
	rec = doJSON(e, http.MethodGet, "/api/pets/"+petID, "", other)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAppointmentEndpoints(t *testing.T) {
	e := setupServer(t)
	token := registerAndLogin(t, e, "booking@example.org")

	rec := doJSON(e, http.MethodPost, "/api/pets",
		`{"name":"Mia","species":"cat"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	petID := jsoniter.Get(rec.Body.Bytes(), "data", "id").ToString()

	service := domain.GroomService{
		ID: 777001, Name: "Quick Bath", Price: decimal.RequireFromString("35.00"),
		DurationMinutes: 45, Active: true,
	}
	require.NoError(t, testDB.Create(&service).Error)

	future := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	rec = doJSON(e, http.MethodPost, "/api/appointments",
		`{"pet_id":"`+petID+`","service_id":"777001","scheduled_at":"`+future+`"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	apptID := jsoniter.Get(rec.Body.Bytes(), "data", "id").ToString()
	assert.Equal(t, "pending", jsoniter.Get(rec.Body.Bytes(), "data", "status").ToString())
	// total price defaults to the service price
	assert.Equal(t, "35", jsoniter.Get(rec.Body.Bytes(), "data", "total_price").ToString())

	past := time.Now().Add(-time.Hour).Format(time.RFC3339)
	rec = doJSON(e, http.MethodPost, "/api/appointments",
		`{"pet_id":"`+petID+`","service_id":"777001","scheduled_at":"`+past+`"}`, token)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/appointments/"+apptID+"/status",
		`{"status":"done"}`, token)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/appointments/"+apptID+"/status",
		`{"status":"confirmed"}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "confirmed", jsoniter.Get(rec.Body.Bytes(), "data", "status").ToString())

	rec = doJSON(e, http.MethodPut, "/api/appointments/999999/status",
		`{"status":"confirmed"}`, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/appointments?status=confirmed", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), apptID)
}

func TestAppointmentsByStatusAdminOnly(t *testing.T) {
	e := setupServer(t)
	client := registerAndLogin(t, e, "agenda-client@example.org")
	admin := registerAdmin(t, e, "agenda-admin@example.org")

	rec := doJSON(e, http.MethodPost, "/api/pets",
		`{"name":"Thor","species":"dog"}`, client)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	petID := jsoniter.Get(rec.Body.Bytes(), "data", "id").ToString()

	service := domain.GroomService{
		ID: 777002, Name: "Agenda Bath", Price: decimal.RequireFromString("30.00"),
		DurationMinutes: 30, Active: true,
	}
	require.NoError(t, testDB.Create(&service).Error)

	future := time.Now().Add(72 * time.Hour).Format(time.RFC3339)
	rec = doJSON(e, http.MethodPost, "/api/appointments",
		`{"pet_id":"`+petID+`","service_id":"777002","scheduled_at":"`+future+`"}`, client)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	apptID := jsoniter.Get(rec.Body.Bytes(), "data", "id").ToString()

	rec = doJSON(e, http.MethodPut, "/api/appointments/"+apptID+"/status",
		`{"status":"in_progress"}`, client)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/api/appointments/status/in_progress", "", admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), apptID)

	rec = doJSON(e, http.MethodGet, "/api/appointments/status/in_progress", "", client)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/appointments/status/finished", "", admin)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMeReportsAppointmentCount(t *testing.T) {
	e := setupServer(t)
	token := registerAndLogin(t, e, "counter@example.org")

	rec := doJSON(e, http.MethodGet, "/api/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "counter@example.org",
		jsoniter.Get(rec.Body.Bytes(), "data", "user", "email").ToString())
	assert.Equal(t, int64(0),
		jsoniter.Get(rec.Body.Bytes(), "data", "appointment_count").ToInt64())

	rec = doJSON(e, http.MethodPost, "/api/pets",
		`{"name":"Luna","species":"cat"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	petID := jsoniter.Get(rec.Body.Bytes(), "data", "id").ToString()

	service := domain.GroomService{
		ID: 777003, Name: "Counter Bath", Price: decimal.RequireFromString("25.00"),
		DurationMinutes: 30, Active: true,
	}
	require.NoError(t, testDB.Create(&service).Error)

	future := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
	rec = doJSON(e, http.MethodPost, "/api/appointments",
		`{"pet_id":"`+petID+`","service_id":"777003","scheduled_at":"`+future+`"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/api/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1),
		jsoniter.Get(rec.Body.Bytes(), "data", "appointment_count").ToInt64())
}

func TestCreateProductHonorsInactive(t *testing.T) {
	e := setupServer(t)
	admin := registerAdmin(t, e, "stock-admin@example.org")

	rec := doJSON(e, http.MethodPost, "/api/categories",
		`{"name":"Seasonal"}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	categoryID := jsoniter.Get(rec.Body.Bytes(), "data", "id").ToString()

	rec = doJSON(e, http.MethodPost, "/api/products",
		`{"category_id":"`+categoryID+`","name":"Winter Coat","price":"59.90","sku":"SEAS-001","stock_quantity":3,"active":false}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	productID := jsoniter.Get(rec.Body.Bytes(), "data", "id").ToString()

	rec = doJSON(e, http.MethodGet, "/api/products/"+productID, "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, jsoniter.Get(rec.Body.Bytes(), "data", "active").ToBool())
}

func TestPricingQuote(t *testing.T) {
	e := setupServer(t)
	token := registerAndLogin(t, e, "quote@example.org")

	rec := doJSON(e, http.MethodPost, "/api/pricing/quote",
		`{"unit_price":"25.00","quantity":5,"strategy":{"name":"bulk_discount","percent":"15","min_quantity":5}}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "106.25", jsoniter.Get(rec.Body.Bytes(), "data", "total_price").ToString())

	// percent and min_quantity may also arrive as JSON numbers
	rec = doJSON(e, http.MethodPost, "/api/pricing/quote",
		`{"unit_price":"25.00","quantity":5,"strategy":{"name":"bulk_discount","percent":15,"min_quantity":5}}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "106.25", jsoniter.Get(rec.Body.Bytes(), "data", "total_price").ToString())

	rec = doJSON(e, http.MethodPost, "/api/pricing/quote",
		`{"unit_price":"25.00","quantity":5,"strategy":{"name":"mystery"}}`, token)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
