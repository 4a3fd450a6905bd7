// Package webserver owns the echo instance, its middleware chain and the
// authenticated /api route group. Handler packages register their routes
// through the ApiXXX/PubXXX helpers.
package webserver

import (
	"fmt"

	"github.com/durendeer/petcare/internal/app"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
)

const (
	ContextKeyDB  = "petcare_db"
	ContextKeyApp = "petcare_app"

	SessionName      = "petcare_session"
	SessionKeyUserId = "uid"
	SessionKeyLevel  = "level"
)

var server *WebServer

type WebServer struct {
	root   *echo.Echo
	api    *echo.Group
	appCtx app.AppContext
}

// Init builds the package-level server instance.
func Init(appCtx app.AppContext) *WebServer {
	server = NewWebServer(appCtx)
	return server
}

func NewWebServer(appCtx app.AppContext) *WebServer {
	cfg := appCtx.Config()
	root := echo.New()
	root.HideBanner = true
	root.Debug = cfg.System.Debug
	root.JSONSerializer = &JsoniterSerializer{}

	root.Use(middleware.Recover())
	root.Use(ZapLoggerMiddleware())
	root.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.Web.Secret))))
	root.Use(injectAppContext(appCtx))

	ws := &WebServer{root: root, appCtx: appCtx}

	// /api requires either an authenticated session or a bearer token.
	// A valid session skips JWT parsing entirely.
	ws.api = root.Group("/api", echojwt.WithConfig(echojwt.Config{
		Skipper:        SessionAuthenticated,
		ParseTokenFunc: parseToken(cfg.Web.Secret),
	}))
	return ws
}

// Echo exposes the underlying echo instance (used in tests).
func (ws *WebServer) Echo() *echo.Echo {
	return ws.root
}

func (ws *WebServer) Listen() error {
	web := ws.appCtx.Config().Web
	return ws.root.Start(fmt.Sprintf("%s:%d", web.Host, web.Port))
}

func Listen() error {
	return server.Listen()
}

// SessionAuthenticated reports whether the request carries a logged-in
// session cookie.
func SessionAuthenticated(c echo.Context) bool {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return false
	}
	uid, ok := sess.Values[SessionKeyUserId]
	return ok && uid != nil
}

func parseToken(secret string) func(c echo.Context, auth string) (interface{}, error) {
	return func(c echo.Context, auth string) (interface{}, error) {
		token, err := jwt.ParseWithClaims(auth, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != "HS256" {
				return nil, errors.Errorf("unexpected signing method %s", t.Method.Alg())
			}
			return []byte(secret), nil
		})
		if err != nil {
			return nil, err
		}
		if !token.Valid {
			return nil, errors.New("invalid token")
		}
		return token, nil
	}
}

// Route registration helpers. Handler packages call these after Init.

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.POST(path, h, m...)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.PUT(path, h, m...)
}

func ApiPATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.PATCH(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.DELETE(path, h, m...)
}

// PubPOST registers an unauthenticated route.
func PubPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.POST(path, h, m...)
}

func PubGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.GET(path, h, m...)
}
