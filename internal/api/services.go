package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/durendeer/petcare/internal/domain"
	"github.com/durendeer/petcare/internal/webserver"
	"github.com/durendeer/petcare/pkg/common"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type servicePayload struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	DurationMinutes int    `json:"duration_minutes"`
	Active          *bool  `json:"active"`
}

func registerServiceRoutes() {
	webserver.ApiGET("/services", listServices)
	webserver.ApiGET("/services/:id", getService)
	webserver.ApiPOST("/services", createService)
	webserver.ApiPUT("/services/:id", updateService)
	webserver.ApiDELETE("/services/:id", deleteService)
}

func listServices(c echo.Context) error {
	db := GetDB(c).Model(&domain.GroomService{})
	if active := c.QueryParam("active"); active != "" {
		db = db.Where("active = ?", active == "true" || active == "1")
	}
	var rows []domain.GroomService
	if err := db.Order("name ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query services", err.Error())
	}
	return ok(c, rows)
}

func getService(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID", nil)
	}
	var service domain.GroomService
	if err := GetDB(c).First(&service, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Service not found", nil)
	}
	return ok(c, service)
}

func (p *servicePayload) validate() ([]string, decimal.Decimal) {
	var msgs []string
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		msgs = append(msgs, "name is required")
	}
	if p.DurationMinutes <= 0 {
		msgs = append(msgs, "duration_minutes must be positive")
	}
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		msgs = append(msgs, "price must be a decimal number")
	} else if price.IsNegative() {
		msgs = append(msgs, "price must be positive")
	}
	return msgs, price
}

func createService(c echo.Context) error {
	if !isAdmin(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin level required", nil)
	}
	var payload servicePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse service", err.Error())
	}
	msgs, price := payload.validate()
	if len(msgs) > 0 {
		return failErr(c, domain.NewValidationError(msgs...))
	}

	service := domain.GroomService{
		ID:              common.UUIDint64(),
		Name:            payload.Name,
		Description:     payload.Description,
		Price:           price,
		DurationMinutes: payload.DurationMinutes,
		Active:          payload.Active == nil || *payload.Active,
	}
	if err := GetDB(c).Create(&service).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create service", err.Error())
	}
	addOprLog(c, "service.create", service.Name)
	return created(c, service)
}

func updateService(c echo.Context) error {
	if !isAdmin(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin level required", nil)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID", nil)
	}
	var service domain.GroomService
	if err := GetDB(c).First(&service, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Service not found", nil)
	}

	var payload servicePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse service", err.Error())
	}
	msgs, price := payload.validate()
	if len(msgs) > 0 {
		return failErr(c, domain.NewValidationError(msgs...))
	}

	service.Name = payload.Name
	service.Description = payload.Description
	service.Price = price
	service.DurationMinutes = payload.DurationMinutes
	if payload.Active != nil {
		service.Active = *payload.Active
	}
	if err := GetDB(c).Save(&service).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update service", err.Error())
	}
	addOprLog(c, "service.update", service.Name)
	return ok(c, service)
}

func deleteService(c echo.Context) error {
	if !isAdmin(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin level required", nil)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID", nil)
	}
	result := GetDB(c).Delete(&domain.GroomService{}, id)
	if result.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete service", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Service not found", nil)
	}
	addOprLog(c, "service.delete", strconv.FormatInt(id, 10))
	return ok(c, map[string]interface{}{"id": id})
}
