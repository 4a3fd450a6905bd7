package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/durendeer/petcare/internal/catalog"
	"github.com/durendeer/petcare/internal/domain"
	"github.com/durendeer/petcare/internal/webserver"
	"github.com/durendeer/petcare/pkg/common"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type productPayload struct {
	CategoryId    int64    `json:"category_id,string"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         string   `json:"price"`
	StockQuantity int      `json:"stock_quantity"`
	Sku           string   `json:"sku"`
	Images        []string `json:"images"`
	Weight        string   `json:"weight"`
	Dimensions    string   `json:"dimensions"`
	Active        *bool    `json:"active"`
}

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/export", exportProducts)
	webserver.ApiGET("/products/search", searchProducts)
	webserver.ApiGET("/products/sku/:sku", getProductBySku)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiGET("/categories/:id/products", listCategoryProducts)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

// whitelist allowed sort columns to avoid SQL injection
var productSortColumns = map[string]string{
	"id":             "id",
	"name":           "name",
	"price":          "price",
	"stock_quantity": "stock_quantity",
	"created_at":     "created_at",
	"updated_at":     "updated_at",
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.TrimSpace(c.QueryParam("q"))
	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	sortCol, ok := productSortColumns[sortField]
	if !ok {
		sortCol = "name"
	}

	db := GetDB(c).Model(&domain.Product{}).Preload("Category")
	if q != "" {
		if strings.EqualFold(db.Dialector.Name(), "postgres") {
			db = db.Where("name ILIKE ? OR description ILIKE ?", "%"+q+"%", "%"+q+"%")
		} else {
			pattern := "%" + strings.ToLower(q) + "%"
			db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		}
	}
	if cid := c.QueryParam("category_id"); cid != "" {
		db = db.Where("category_id = ?", cid)
	}
	if active := c.QueryParam("active"); active != "" {
		db = db.Where("active = ?", active == "true" || active == "1")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order(sortCol + " " + order).
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	product, err := catalog.NewGormProductRepository(GetDB(c)).
		FindByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, product)
}

func getProductBySku(c echo.Context) error {
	sku := strings.TrimSpace(c.Param("sku"))
	product, err := catalog.NewGormProductRepository(GetDB(c)).
		FindBySku(c.Request().Context(), sku)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, product)
}

func searchProducts(c echo.Context) error {
	term := strings.TrimSpace(c.QueryParam("q"))
	if term == "" {
		return failErr(c, domain.NewValidationError("search term is required"))
	}
	products, err := catalog.NewGormProductRepository(GetDB(c)).
		Search(c.Request().Context(), term)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, products)
}

func listCategoryProducts(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	query := catalog.GetProductsByCategoryQuery{
		CategoryId: id,
		ActiveOnly: c.QueryParam("active") == "true",
		InStock:    c.QueryParam("in_stock") == "true",
		OrderBy:    c.QueryParam("sort"),
		OrderDesc:  strings.EqualFold(c.QueryParam("order"), "desc"),
	}
	products, err := catalog.NewGormProductRepository(GetDB(c)).
		FindByCategory(c.Request().Context(), query)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, products)
}

func (p *productPayload) validate() ([]string, decimal.Decimal, decimal.NullDecimal) {
	var msgs []string
	p.Name = strings.TrimSpace(p.Name)
	p.Sku = strings.TrimSpace(p.Sku)
	if p.Name == "" {
		msgs = append(msgs, "name is required")
	}
	if p.Sku == "" {
		msgs = append(msgs, "sku is required")
	}
	if p.CategoryId <= 0 {
		msgs = append(msgs, "category_id is required")
	}
	if p.StockQuantity < 0 {
		msgs = append(msgs, "stock_quantity must be positive")
	}

	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		msgs = append(msgs, "price must be a decimal number")
	} else if price.IsNegative() {
		msgs = append(msgs, "price must be positive")
	}

	var weight decimal.NullDecimal
	if p.Weight != "" {
		w, err := decimal.NewFromString(p.Weight)
		if err != nil || w.IsNegative() {
			msgs = append(msgs, "weight must be a positive decimal number")
		} else {
			weight = decimal.NullDecimal{Decimal: w, Valid: true}
		}
	}
	return msgs, price, weight
}

func createProduct(c echo.Context) error {
	if !isAdmin(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin level required", nil)
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	msgs, price, weight := payload.validate()
	if len(msgs) > 0 {
		return failErr(c, domain.NewValidationError(msgs...))
	}

	db := GetDB(c)
	var count int64
	db.Model(&domain.Product{}).Where("sku = ?", payload.Sku).Count(&count)
	if count > 0 {
		return failErr(c, domain.NewValidationError("sku already in use"))
	}

	product := domain.Product{
		ID:            common.UUIDint64(),
		CategoryId:    payload.CategoryId,
		Name:          payload.Name,
		Description:   payload.Description,
		Price:         price,
		StockQuantity: payload.StockQuantity,
		Sku:           payload.Sku,
		Images:        payload.Images,
		Weight:        weight,
		Dimensions:    strings.TrimSpace(payload.Dimensions),
		Active:        payload.Active == nil || *payload.Active,
	}
	if err := catalog.NewGormProductRepository(db).
		Create(c.Request().Context(), &product); err != nil {
		return failErr(c, err)
	}
	addOprLog(c, "product.create", product.Sku)
	return created(c, product)
}

func updateProduct(c echo.Context) error {
	if !isAdmin(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin level required", nil)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	msgs, price, weight := payload.validate()
	if len(msgs) > 0 {
		return failErr(c, domain.NewValidationError(msgs...))
	}

	repo := catalog.NewGormProductRepository(GetDB(c))
	values := map[string]interface{}{
		"category_id":    payload.CategoryId,
		"name":           payload.Name,
		"description":    payload.Description,
		"price":          price,
		"stock_quantity": payload.StockQuantity,
		"sku":            payload.Sku,
		"images":         domain.StringList(payload.Images),
		"weight":         weight,
		"dimensions":     strings.TrimSpace(payload.Dimensions),
	}
	if payload.Active != nil {
		values["active"] = *payload.Active
	}
	if err := repo.Updates(c.Request().Context(), id, values); err != nil {
		return failErr(c, err)
	}
	product, err := repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	addOprLog(c, "product.update", product.Sku)
	return ok(c, product)
}

func deleteProduct(c echo.Context) error {
	if !isAdmin(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin level required", nil)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := catalog.NewGormProductRepository(GetDB(c)).
		Delete(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	addOprLog(c, "product.delete", strconv.FormatInt(id, 10))
	return ok(c, map[string]interface{}{"id": id})
}

type productCSV struct {
	Sku           string `csv:"sku"`
	Name          string `csv:"name"`
	Category      string `csv:"category"`
	Price         string `csv:"price"`
	StockQuantity int    `csv:"stock_quantity"`
	Active        bool   `csv:"active"`
}

func exportProducts(c echo.Context) error {
	products, err := catalog.NewGormProductRepository(GetDB(c)).
		FindAll(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}

	rows := make([]productCSV, 0, len(products))
	for _, p := range products {
		row := productCSV{
			Sku:           p.Sku,
			Name:          p.Name,
			Price:         p.Price.StringFixed(2),
			StockQuantity: p.StockQuantity,
			Active:        p.Active,
		}
		if p.Category != nil {
			row.Category = p.Category.Name
		}
		rows = append(rows, row)
	}

	data, err := gocsv.MarshalString(&rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export products", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(data))
}
