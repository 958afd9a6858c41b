package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"jyotish/backend/internal/handler"
	"jyotish/backend/internal/service"
	"jyotish/backend/pkg/logger"
)

// AuthCookieName is the session cookie checked by the admin auth middleware.
const AuthCookieName = handler.AuthCookieName

// credentialIDKey is the context key the access gate stores the admitted
// credential's id under.
const credentialIDKey = "credential_id"

// JWTAuthMiddleware guards admin routes. The token comes from the
// Authorization header or the session cookie.
func JWTAuthMiddleware(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				if cookie, err := c.Cookie(AuthCookieName); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				return handler.Error(c, http.StatusUnauthorized, "unauthorized")
			}

			valid, err := auth.ValidateToken(token)
			if err != nil || !valid {
				return handler.Error(c, http.StatusUnauthorized, "unauthorized")
			}
			return next(c)
		}
	}
}

type rateLimitedResponse struct {
	Error             string `json:"error"`
	Window            string `json:"window"`
	Limit             int64  `json:"limit"`
	RetryAfterSeconds int64  `json:"retryAfterSeconds"`
}

// AccessGateMiddleware charges each request against the resolved
// credential's quotas before the handler runs. The API key comes from the
// Authorization header or the key query parameter; the requesting domain
// from Origin, falling back to Referer.
func AccessGateMiddleware(gate service.AccessService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bearer := bearerToken(c)
			if bearer == "" {
				bearer = c.QueryParam("key")
			}
			origin := c.Request().Header.Get("Origin")
			if origin == "" {
				origin = c.Request().Header.Get("Referer")
			}

			result, err := gate.Admit(c.Request().Context(), bearer, origin, time.Now().UTC())
			if err != nil {
				return writeAdmitError(c, err)
			}

			c.Set(credentialIDKey, result.CredentialID)
			return next(c)
		}
	}
}

func writeAdmitError(c echo.Context, err error) error {
	var rateErr *service.RateLimitError
	switch {
	case errors.As(err, &rateErr):
		seconds := int64(rateErr.RetryAfter / time.Second)
		c.Response().Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
		return c.JSON(http.StatusTooManyRequests, rateLimitedResponse{
			Error:             "rate limit exceeded",
			Window:            string(rateErr.Kind),
			Limit:             rateErr.Limit,
			RetryAfterSeconds: seconds,
		})
	case errors.Is(err, service.ErrUnresolved):
		return handler.Error(c, http.StatusUnauthorized, "no valid api key or authorized domain")
	case errors.Is(err, service.ErrStorageUnavailable):
		return handler.Error(c, http.StatusServiceUnavailable, "service unavailable")
	default:
		return handler.Error(c, http.StatusInternalServerError, "internal error")
	}
}

func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// RequestLoggerMiddleware logs each request with its status and duration.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			args := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"duration", time.Since(start).String(),
			}
			if id, ok := c.Get(credentialIDKey).(int64); ok {
				args = append(args, "credential", id)
			}

			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("request", args...)
			case status >= http.StatusBadRequest:
				logger.Warn("request", args...)
			default:
				logger.Info("request", args...)
			}
			return nil
		}
	}
}
