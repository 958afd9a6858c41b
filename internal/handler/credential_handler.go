package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jyotish/backend/internal/service"
)

type CredentialHandler struct {
	service service.CredentialService
}

type createKeyRequest struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	LimitMinute int64  `json:"limitMinute"`
	LimitDay    int64  `json:"limitDay"`
	LimitMonth  int64  `json:"limitMonth"`
}

type createDomainRequest struct {
	Domain      string `json:"domain"`
	Label       string `json:"label"`
	Description string `json:"description"`
	LimitMinute int64  `json:"limitMinute"`
	LimitDay    int64  `json:"limitDay"`
	LimitMonth  int64  `json:"limitMonth"`
}

type updateLimitsRequest struct {
	LimitMinute int64 `json:"limitMinute"`
	LimitDay    int64 `json:"limitDay"`
	LimitMonth  int64 `json:"limitMonth"`
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

type credentialResponse struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Label       string  `json:"label"`
	Description *string `json:"description,omitempty"`
	LimitMinute int64   `json:"limitMinute"`
	LimitDay    int64   `json:"limitDay"`
	LimitMonth  int64   `json:"limitMonth"`
	Active      bool    `json:"active"`
	LastUsedAt  *string `json:"lastUsedAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type createdKeyResponse struct {
	Credential credentialResponse `json:"credential"`
	// Secret is shown exactly once at creation; only its hash is stored.
	Secret string `json:"secret"`
}

type credentialListResponse struct {
	Items []credentialResponse `json:"items"`
}

type windowUsageResponse struct {
	Window         string `json:"window"`
	Used           int64  `json:"used"`
	Limit          int64  `json:"limit"`
	ResetsInSecond int64  `json:"resetsInSeconds"`
}

type usageResponse struct {
	CredentialID string                `json:"credentialId"`
	Windows      []windowUsageResponse `json:"windows"`
}

func NewCredentialHandler(service service.CredentialService) *CredentialHandler {
	return &CredentialHandler{service: service}
}

func (h *CredentialHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/credentials/keys", h.CreateKey)
	g.POST("/credentials/domains", h.CreateDomain)
	g.GET("/credentials", h.List)
	g.PUT("/credentials/:id/limits", h.UpdateLimits)
	g.PUT("/credentials/:id/active", h.SetActive)
	g.DELETE("/credentials/:id", h.Delete)
	g.GET("/credentials/:id/usage", h.Usage)
}

func (h *CredentialHandler) CreateKey(c echo.Context) error {
	var req createKeyRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	dto, secret, err := h.service.CreateKey(c.Request().Context(), req.Label, req.Description, service.Limits{
		Minute: req.LimitMinute,
		Day:    req.LimitDay,
		Month:  req.LimitMonth,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, createdKeyResponse{
		Credential: toCredentialResponse(dto),
		Secret:     secret,
	})
}

func (h *CredentialHandler) CreateDomain(c echo.Context) error {
	var req createDomainRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	dto, err := h.service.CreateDomain(c.Request().Context(), req.Domain, req.Label, req.Description, service.Limits{
		Minute: req.LimitMinute,
		Day:    req.LimitDay,
		Month:  req.LimitMonth,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toCredentialResponse(dto))
}

func (h *CredentialHandler) List(c echo.Context) error {
	dtos, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	items := make([]credentialResponse, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, toCredentialResponse(dto))
	}
	return c.JSON(http.StatusOK, credentialListResponse{Items: items})
}

func (h *CredentialHandler) UpdateLimits(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	var req updateLimitsRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	if err := h.service.UpdateLimits(c.Request().Context(), id, service.Limits{
		Minute: req.LimitMinute,
		Day:    req.LimitDay,
		Month:  req.LimitMonth,
	}); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CredentialHandler) SetActive(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	if err := h.service.SetActive(c.Request().Context(), id, req.Active); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CredentialHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CredentialHandler) Usage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	usage, err := h.service.Usage(c.Request().Context(), id, time.Now().UTC())
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := usageResponse{CredentialID: usage.CredentialID}
	for _, w := range usage.Windows {
		resp.Windows = append(resp.Windows, windowUsageResponse{
			Window:         w.Kind,
			Used:           w.Used,
			Limit:          w.Limit,
			ResetsInSecond: w.ResetsInS,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func toCredentialResponse(dto service.CredentialDTO) credentialResponse {
	return credentialResponse{
		ID:          dto.ID,
		Kind:        dto.Kind,
		Label:       dto.Label,
		Description: dto.Description,
		LimitMinute: dto.LimitMinute,
		LimitDay:    dto.LimitDay,
		LimitMonth:  dto.LimitMonth,
		Active:      dto.Active,
		LastUsedAt:  dto.LastUsedAt,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}
}
