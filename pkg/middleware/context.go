package middleware

import (
	ctxkeys "github.com/Ramsey-B/cuvee/pkg/context"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderUserID is the header key for the reviewer identity
const HeaderUserID = "X-User-ID"

func Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()

			// get request id from header
			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			userID := req.Header.Get(HeaderUserID)

			ctx := req.Context()
			ctx = ctxkeys.SetRequestID(ctx, requestID)
			ctx = ctxkeys.SetMethod(ctx, req.Method)
			ctx = ctxkeys.SetRoute(ctx, req.URL.Path)
			ctx = ctxkeys.SetRemoteIP(ctx, c.RealIP())
			ctx = ctxkeys.SetReferer(ctx, req.Referer())
			ctx = ctxkeys.SetUserID(ctx, userID)

			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
