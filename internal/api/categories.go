package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/durendeer/petcare/internal/domain"
	"github.com/durendeer/petcare/internal/webserver"
	"github.com/durendeer/petcare/pkg/common"
	"github.com/labstack/echo/v4"
)

type categoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

func registerCategoryRoutes() {
	webserver.ApiGET("/categories", listCategories)
	webserver.ApiGET("/categories/:id", getCategory)
	webserver.ApiPOST("/categories", createCategory)
	webserver.ApiPUT("/categories/:id", updateCategory)
	webserver.ApiDELETE("/categories/:id", deleteCategory)
}

func listCategories(c echo.Context) error {
	db := GetDB(c).Model(&domain.Category{})
	if active := c.QueryParam("active"); active != "" {
		db = db.Where("active = ?", active == "true" || active == "1")
	}
	var rows []domain.Category
	if err := db.Order("name ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	return ok(c, rows)
}

func getCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	var category domain.Category
	if err := GetDB(c).First(&category, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	}
	return ok(c, category)
}

func createCategory(c echo.Context) error {
	if !isAdmin(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin level required", nil)
	}
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return failErr(c, domain.NewValidationError("name is required"))
	}

	category := domain.Category{
		ID:          common.UUIDint64(),
		Name:        payload.Name,
		Description: payload.Description,
		Active:      payload.Active == nil || *payload.Active,
	}
	if err := GetDB(c).Create(&category).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category", err.Error())
	}
	addOprLog(c, "category.create", category.Name)
	return created(c, category)
}

func updateCategory(c echo.Context) error {
	if !isAdmin(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin level required", nil)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	var category domain.Category
	if err := GetDB(c).First(&category, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	}

	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return failErr(c, domain.NewValidationError("name is required"))
	}

	category.Name = payload.Name
	category.Description = payload.Description
	if payload.Active != nil {
		category.Active = *payload.Active
	}
	if err := GetDB(c).Save(&category).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update category", err.Error())
	}
	addOprLog(c, "category.update", category.Name)
	return ok(c, category)
}

func deleteCategory(c echo.Context) error {
	if !isAdmin(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin level required", nil)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}

	db := GetDB(c)
	var inUse int64
	db.Model(&domain.Product{}).Where("category_id = ?", id).Count(&inUse)
	if inUse > 0 {
		return failErr(c, domain.NewValidationError("category has products and cannot be removed"))
	}

	result := db.Delete(&domain.Category{}, id)
	if result.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete category", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	}
	addOprLog(c, "category.delete", strconv.FormatInt(id, 10))
	return ok(c, map[string]interface{}{"id": id})
}
