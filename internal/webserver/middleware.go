package webserver

import (
	"time"

	"github.com/durendeer/petcare/internal/app"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// injectAppContext makes the application context and database handle
// available to handlers via the echo context.
func injectAppContext(appCtx app.AppContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyApp, appCtx)
			c.Set(ContextKeyDB, appCtx.DB())
			return next(c)
		}
	}
}

// ZapLoggerMiddleware logs each request through the global zap logger.
func ZapLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}

			switch {
			case res.Status >= 500:
				zap.L().Error("http request", fields...)
			case res.Status >= 400:
				zap.L().Warn("http request", fields...)
			default:
				zap.L().Info("http request", fields...)
			}
			return nil
		}
	}
}
