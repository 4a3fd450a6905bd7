package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/durendeer/petcare/internal/booking"
	"github.com/durendeer/petcare/internal/domain"
	"github.com/durendeer/petcare/internal/webserver"
	"github.com/durendeer/petcare/pkg/common"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type registerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerAuthRoutes() {
	webserver.PubPOST("/api/register", registerUser)
	webserver.PubPOST("/api/login", login)
	webserver.ApiPOST("/logout", logout)
	webserver.ApiGET("/me", me)
}

func registerUser(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}

	var msgs []string
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		msgs = append(msgs, "name is required")
	}
	if payload.Email == "" || !strings.Contains(payload.Email, "@") {
		msgs = append(msgs, "a valid email is required")
	}
	if len(payload.Password) < 6 {
		msgs = append(msgs, "password must have at least 6 characters")
	}
	if len(msgs) > 0 {
		return failErr(c, domain.NewValidationError(msgs...))
	}

	db := GetDB(c)
	var count int64
	db.Model(&domain.SysUser{}).Where("email = ?", payload.Email).Count(&count)
	if count > 0 {
		return failErr(c, domain.NewValidationError("email already registered"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to hash password", nil)
	}

	user := domain.SysUser{
		ID:       common.UUIDint64(),
		Name:     payload.Name,
		Email:    payload.Email,
		Password: string(hashed),
		Phone:    strings.TrimSpace(payload.Phone),
		Level:    "user",
	}
	if err := db.Create(&user).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user", err.Error())
	}
	return created(c, user)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	db := GetDB(c)
	var user domain.SysUser
	err := db.Where("email = ?", payload.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Login failed", err.Error())
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password", nil)
	}

	cfg := GetAppContext(c).Config().Web
	expireAt := time.Now().Add(time.Duration(cfg.JwtExpm) * time.Minute)

	// Snowflake ids exceed the float64 integer range, so uid travels as a
	// string claim.
	claims := jwt.MapClaims{
		"uid":   strconv.FormatInt(user.ID, 10),
		"level": user.Level,
		"exp":   expireAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign token", nil)
	}

	if sess, err := session.Get(webserver.SessionName, c); err == nil {
		sess.Values[webserver.SessionKeyUserId] = strconv.FormatInt(user.ID, 10)
		sess.Values[webserver.SessionKeyLevel] = user.Level
		sess.Options.HttpOnly = true
		sess.Options.MaxAge = cfg.JwtExpm * 60
		_ = sess.Save(c.Request(), c.Response())
	}

	db.Model(&domain.SysUser{}).Where("id = ?", user.ID).
		Update("last_login", time.Now())

	return ok(c, map[string]interface{}{
		"token":     token,
		"expire_at": expireAt,
		"user":      user,
	})
}

func logout(c echo.Context) error {
	if sess, err := session.Get(webserver.SessionName, c); err == nil {
		sess.Options.MaxAge = -1
		sess.Values = map[interface{}]interface{}{}
		_ = sess.Save(c.Request(), c.Response())
	}
	return ok(c, nil)
}

func me(c echo.Context) error {
	var user domain.SysUser
	if err := GetDB(c).First(&user, currentUserID(c)).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	count, err := booking.NewGormAppointmentRepository(GetDB(c)).
		CountByUser(c.Request().Context(), user.ID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{
		"user":              user,
		"appointment_count": count,
	})
}
