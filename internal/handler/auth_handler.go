package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jyotish/backend/internal/service"
)

// AuthCookieName is the session cookie carrying the admin JWT.
const AuthCookieName = "jyotish_auth"

const authCookieMaxAge = 7 * 24 * time.Hour

type AuthHandler struct {
	service service.AuthService
}

type registerRequest struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type updateProfileRequest struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

type authStatusResponse struct {
	Registered bool `json:"registered"`
}

type userResponse struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type logoutResponse struct {
	Message string `json:"message"`
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(public, protected *echo.Group) {
	public.GET("/auth/status", h.GetStatus)
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)
	public.POST("/auth/logout", h.Logout)
	protected.GET("/auth/me", h.GetCurrentUser)
	protected.PUT("/auth/profile", h.UpdateProfile)
}

func (h *AuthHandler) GetStatus(c echo.Context) error {
	registered, err := h.service.IsRegistered(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, authStatusResponse{Registered: registered})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	resp, err := h.service.Register(c.Request().Context(), req.Username, req.Nickname, req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	setAuthCookie(c, resp.Token)
	return c.JSON(http.StatusOK, toAuthResponse(resp))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	resp, err := h.service.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	setAuthCookie(c, resp.Token)
	return c.JSON(http.StatusOK, toAuthResponse(resp))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	clearAuthCookie(c)
	return c.JSON(http.StatusOK, logoutResponse{Message: "logged out"})
}

func (h *AuthHandler) GetCurrentUser(c echo.Context) error {
	user, err := h.service.CurrentUser(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	user, err := h.service.UpdateProfile(c.Request().Context(), req.Nickname, req.Email)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func setAuthCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(authCookieMaxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func toUserResponse(user *service.UserDTO) userResponse {
	return userResponse{
		Username: user.Username,
		Nickname: user.Nickname,
		Email:    user.Email,
	}
}

func toAuthResponse(resp *service.AuthResponse) authResponse {
	return authResponse{
		User:  toUserResponse(resp.User),
		Token: resp.Token,
	}
}
