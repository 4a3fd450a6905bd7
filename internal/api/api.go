// Package api implements the JSON HTTP endpoints: authentication, catalog,
// pets, grooming appointments and pricing quotes.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/durendeer/petcare/internal/app"
	"github.com/durendeer/petcare/internal/domain"
	"github.com/durendeer/petcare/internal/webserver"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gorm.io/gorm"
)

// RegisterRoutes binds every endpoint to the shared webserver. Call after
// webserver.Init.
func RegisterRoutes() {
	webserver.PubGET("/health", health)
	registerAuthRoutes()
	registerCategoryRoutes()
	registerProductRoutes()
	registerServiceRoutes()
	registerPetRoutes()
	registerAppointmentRoutes()
	registerPricingRoutes()
}

func health(c echo.Context) error {
	sqlDB, err := GetDB(c).DB()
	if err != nil || sqlDB.Ping() != nil {
		return fail(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Database unreachable", nil)
	}
	return ok(c, map[string]interface{}{"status": "up"})
}

func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.ContextKeyDB).(*gorm.DB)
}

func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.ContextKeyApp).(app.AppContext)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"code": 0, "data": data})
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, map[string]interface{}{"code": 0, "data": data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    1,
		"error":   code,
		"message": message,
		"detail":  detail,
	})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code":     0,
		"data":     rows,
		"total":    total,
		"page":     page,
		"per_page": pageSize,
	})
}

// failErr maps domain errors onto the response contract: validation
// failures are 422, missing records are 404, everything else is 500.
func failErr(c echo.Context, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return fail(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", ve.Error(), ve.Messages)
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Record not found", nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Operation failed", err.Error())
	}
}

// currentUserID resolves the caller from the session cookie first, then
// from the bearer token claims.
func currentUserID(c echo.Context) int64 {
	if sess, err := session.Get(webserver.SessionName, c); err == nil {
		if uid, ok := sess.Values[webserver.SessionKeyUserId]; ok {
			if id := cast.ToInt64(uid); id > 0 {
				return id
			}
		}
	}
	if token, ok := c.Get("user").(*jwt.Token); ok {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			return cast.ToInt64(claims["uid"])
		}
	}
	return 0
}

func currentUserLevel(c echo.Context) string {
	if sess, err := session.Get(webserver.SessionName, c); err == nil {
		if level, ok := sess.Values[webserver.SessionKeyLevel]; ok {
			if s := cast.ToString(level); s != "" {
				return s
			}
		}
	}
	if token, ok := c.Get("user").(*jwt.Token); ok {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			return cast.ToString(claims["level"])
		}
	}
	return ""
}

func isAdmin(c echo.Context) bool {
	return currentUserLevel(c) == "admin"
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize = 20
	if ps, err := strconv.Atoi(c.QueryParam("per_page")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid %s", name)
	}
	return id, nil
}

// addOprLog records a mutating operation in the audit table. Failures are
// ignored; auditing never blocks the request.
func addOprLog(c echo.Context, action, desc string) {
	GetDB(c).Create(&domain.SysOprLog{
		OprName:   strconv.FormatInt(currentUserID(c), 10),
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	})
}
