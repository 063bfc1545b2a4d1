package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/diego1198/inventory-frontend/pkg/logger"
)

// RequestLogger registra cada request: método, ruta, status, latencia y request id.
// Nunca registra headers ni cookies (llevan el token). Usar después de requestid.New().
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	l := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de fiber fije el status antes de loguear
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		default:
			ev = l.Info()
		}
		ev = ev.
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.IP())
		if q := string(c.Request().URI().QueryString()); q != "" {
			ev = ev.Str("query", q)
		}
		if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg("HTTP request")
		return nil
	}
}
