package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "jyotish/backend/docs"
	"jyotish/backend/internal/handler"
	"jyotish/backend/internal/service"
)

// NewRouter assembles the Echo instance: the public chart surface behind the
// access gate and the admin surface behind JWT auth.
func NewRouter(
	chartHandler *handler.ChartHandler,
	credentialHandler *handler.CredentialHandler,
	authHandler *handler.AuthHandler,
	authService service.AuthService,
	accessService service.AccessService,
	enableSwagger bool,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	if enableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := e.Group("/api")

	gated := api.Group("", AccessGateMiddleware(accessService))
	gated.GET("/chart", chartHandler.Calculate)
	api.GET("/health", chartHandler.Health)

	protected := api.Group("", JWTAuthMiddleware(authService))
	authHandler.RegisterRoutes(api, protected)
	credentialHandler.RegisterRoutes(protected)

	return e
}
