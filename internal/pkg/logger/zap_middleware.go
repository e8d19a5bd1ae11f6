package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ZapEchoMiddleware logs every request with the route it matched. Successful
// requests to quietPaths (probes) are not logged.
func ZapEchoMiddleware(logger *ZapLogger, quietPaths ...string) echo.MiddlewareFunc {
	quiet := make(map[string]bool, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let echo write the error response so the status is final
				c.Error(err)
			}

			req := c.Request()
			entry := RequestLog{
				Method:    req.Method,
				Path:      req.URL.RequestURI(),
				Route:     c.Path(),
				Hour:      c.Param("hour"),
				View:      c.Param("view"),
				ClientIP:  c.RealIP(),
				RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
				Status:    c.Response().Status,
				Latency:   time.Since(start),
				Err:       err,
			}
			if entry.Hour == "" {
				entry.Hour = c.QueryParam("hour")
			}

			if txn := newrelic.FromContext(req.Context()); txn != nil {
				txn.AddAttribute("request_id", entry.RequestID)
				txn.AddAttribute("response_time_ms", entry.Latency.Milliseconds())
				if err != nil {
					txn.NoticeError(err)
				}
			}

			if quiet[entry.Route] && entry.Status < 400 {
				return nil
			}
			logger.LogHTTPRequest(entry)

			return nil
		}
	}
}
