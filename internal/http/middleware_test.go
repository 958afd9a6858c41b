package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gh "jyotish/backend/internal/http"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"jyotish/backend/internal/model"
	"jyotish/backend/internal/service"
	"jyotish/backend/internal/service/mock"
)

func TestJWTAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock.NewMockAuthService(ctrl)
	middleware := gh.JWTAuthMiddleware(mockAuth)

	e := echo.New()
	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	t.Run("MissingAuth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := middleware(handler)(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mockAuth.EXPECT().ValidateToken("invalid-token").Return(false, nil)

		err := middleware(handler)(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidateTokenError", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer error-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mockAuth.EXPECT().ValidateToken("error-token").Return(false, errors.New("validate failed"))

		err := middleware(handler)(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidTokenHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mockAuth.EXPECT().ValidateToken("valid-token").Return(true, nil)

		err := middleware(handler)(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "ok", rec.Body.String())
	})

	t.Run("ValidTokenCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: gh.AuthCookieName, Value: "cookie-token"})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mockAuth.EXPECT().ValidateToken("cookie-token").Return(true, nil)

		err := middleware(handler)(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAccessGateMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGate := mock.NewMockAccessService(ctrl)
	middleware := gh.AccessGateMiddleware(mockGate)

	e := echo.New()
	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	t.Run("AdmittedWithBearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/chart", nil)
		req.Header.Set("Authorization", "Bearer jk_secret")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mockGate.EXPECT().
			Admit(gomock.Any(), "jk_secret", "", gomock.Any()).
			Return(service.AdmitResult{CredentialID: 7, Kind: "key"}, nil)

		err := middleware(handler)(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("KeyQueryParamFallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/chart?key=jk_query", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mockGate.EXPECT().
			Admit(gomock.Any(), "jk_query", "", gomock.Any()).
			Return(service.AdmitResult{CredentialID: 8}, nil)

		err := middleware(handler)(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("OriginHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/chart", nil)
		req.Header.Set("Origin", "https://astro.example.com")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mockGate.EXPECT().
			Admit(gomock.Any(), "", "https://astro.example.com", gomock.Any()).
			Return(service.AdmitResult{CredentialID: 9, Kind: "domain"}, nil)

		err := middleware(handler)(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("RefererFallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/chart", nil)
		req.Header.Set("Referer", "https://astro.example.com/page")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mockGate.EXPECT().
			Admit(gomock.Any(), "", "https://astro.example.com/page", gomock.Any()).
			Return(service.AdmitResult{CredentialID: 9, Kind: "domain"}, nil)

		err := middleware(handler)(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Unresolved", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/chart", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mockGate.EXPECT().
			Admit(gomock.Any(), "", "", gomock.Any()).
			Return(service.AdmitResult{}, service.ErrUnresolved)

		err := middleware(handler)(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("RateLimited", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/chart", nil)
		req.Header.Set("Authorization", "Bearer jk_secret")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mockGate.EXPECT().
			Admit(gomock.Any(), "jk_secret", "", gomock.Any()).
			Return(service.AdmitResult{}, &service.RateLimitError{
				Kind:       model.WindowMinute,
				Limit:      10,
				RetryAfter: 42 * time.Second,
			})

		err := middleware(handler)(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.Equal(t, "42", rec.Header().Get("Retry-After"))
		require.Contains(t, rec.Body.String(), `"window":"minute"`)
		require.Contains(t, rec.Body.String(), `"retryAfterSeconds":42`)
	})

	t.Run("StorageUnavailable", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/chart", nil)
		req.Header.Set("Authorization", "Bearer jk_secret")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mockGate.EXPECT().
			Admit(gomock.Any(), "jk_secret", "", gomock.Any()).
			Return(service.AdmitResult{}, service.ErrStorageUnavailable)

		err := middleware(handler)(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestRequestLoggerMiddleware_StatusBranches(t *testing.T) {
	e := echo.New()
	mw := gh.RequestLoggerMiddleware()

	tests := []struct {
		name       string
		statusCode int
	}{
		{name: "ok", statusCode: http.StatusOK},
		{name: "client_error", statusCode: http.StatusBadRequest},
		{name: "server_error", statusCode: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := func(c echo.Context) error {
				return c.JSON(tc.statusCode, map[string]string{"status": "ok"})
			}

			err := mw(handler)(c)
			require.NoError(t, err)
			require.Equal(t, tc.statusCode, rec.Code)
		})
	}
}
