package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"jyotish/backend/internal/handler"
	"jyotish/backend/internal/service"
	"jyotish/backend/internal/service/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCredentialHandler_CreateKey_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockCredentialService(ctrl)
	h := handler.NewCredentialHandlerHelper(mockService)

	e := newTestEcho()
	reqBody := map[string]interface{}{
		"label":       "Mobile app",
		"limitMinute": 10,
		"limitDay":    100,
		"limitMonth":  1000,
	}
	req := newJSONRequest(http.MethodPost, "/credentials/keys", reqBody)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		CreateKey(gomock.Any(), "Mobile app", "", service.Limits{Minute: 10, Day: 100, Month: 1000}).
		Return(service.CredentialDTO{ID: "1", Kind: "key", Label: "Mobile app"}, "jk_secret", nil)

	err := h.CreateKey(c)
	require.NoError(t, err)

	var resp handler.CreatedKeyResponse
	assertJSONResponse(t, rec, http.StatusCreated, &resp)
	require.Equal(t, "1", resp.Credential.ID)
	require.Equal(t, "jk_secret", resp.Secret)
}

func TestCredentialHandler_CreateKey_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockCredentialService(ctrl)
	h := handler.NewCredentialHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodPost, "/credentials/keys", map[string]interface{}{"label": ""})
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		CreateKey(gomock.Any(), "", "", service.Limits{}).
		Return(service.CredentialDTO{}, "", service.ErrInvalid)

	err := h.CreateKey(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCredentialHandler_CreateKey_InvalidBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockCredentialService(ctrl)
	h := handler.NewCredentialHandlerHelper(mockService)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/credentials/keys", newBody(`{"label":`))
	req.Header.Set("Content-Type", "application/json")
	c, rec := newTestContext(e, req)

	err := h.CreateKey(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCredentialHandler_CreateDomain_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockCredentialService(ctrl)
	h := handler.NewCredentialHandlerHelper(mockService)

	e := newTestEcho()
	reqBody := map[string]interface{}{
		"domain":      "astro.example.com",
		"limitMinute": 60,
	}
	req := newJSONRequest(http.MethodPost, "/credentials/domains", reqBody)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		CreateDomain(gomock.Any(), "astro.example.com", "", "", service.Limits{Minute: 60}).
		Return(service.CredentialDTO{ID: "2", Kind: "domain", Label: "astro.example.com"}, nil)

	err := h.CreateDomain(c)
	require.NoError(t, err)

	var resp handler.CredentialResponse
	assertJSONResponse(t, rec, http.StatusCreated, &resp)
	require.Equal(t, "domain", resp.Kind)
}

func TestCredentialHandler_CreateDomain_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockCredentialService(ctrl)
	h := handler.NewCredentialHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodPost, "/credentials/domains", map[string]interface{}{"domain": "dup.example.com"})
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		CreateDomain(gomock.Any(), "dup.example.com", "", "", service.Limits{}).
		Return(service.CredentialDTO{}, service.ErrConflict)

	err := h.CreateDomain(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCredentialHandler_List_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockCredentialService(ctrl)
	h := handler.NewCredentialHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodGet, "/credentials", nil)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		List(gomock.Any()).
		Return([]service.CredentialDTO{
			{ID: "1", Kind: "key", Label: "Mobile app"},
			{ID: "2", Kind: "domain", Label: "astro.example.com"},
		}, nil)

	err := h.List(c)
	require.NoError(t, err)

	var resp handler.CredentialListResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Len(t, resp.Items, 2)
}

func TestCredentialHandler_UpdateLimits_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockCredentialService(ctrl)
	h := handler.NewCredentialHandlerHelper(mockService)

	e := newTestEcho()
	reqBody := map[string]interface{}{
		"limitMinute": 5,
		"limitDay":    50,
		"limitMonth":  500,
	}
	req := newJSONRequest(http.MethodPut, "/credentials/1/limits", reqBody)
	c, rec := newTestContext(e, req)
	setPathParams(c, map[string]string{"id": "1"})

	mockService.EXPECT().
		UpdateLimits(gomock.Any(), int64(1), service.Limits{Minute: 5, Day: 50, Month: 500}).
		Return(nil)

	err := h.UpdateLimits(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCredentialHandler_UpdateLimits_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockCredentialService(ctrl)
	h := handler.NewCredentialHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodPut, "/credentials/99/limits", map[string]interface{}{"limitMinute": 5})
	c, rec := newTestContext(e, req)
	setPathParams(c, map[string]string{"id": "99"})

	mockService.EXPECT().
		UpdateLimits(gomock.Any(), int64(99), gomock.Any()).
		Return(service.ErrNotFound)

	err := h.UpdateLimits(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCredentialHandler_UpdateLimits_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockCredentialService(ctrl)
	h := handler.NewCredentialHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodPut, "/credentials/abc/limits", map[string]interface{}{"limitMinute": 5})
	c, rec := newTestContext(e, req)
	setPathParams(c, map[string]string{"id": "abc"})

	err := h.UpdateLimits(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCredentialHandler_SetActive_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockCredentialService(ctrl)
	h := handler.NewCredentialHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodPut, "/credentials/1/active", map[string]interface{}{"active": false})
	c, rec := newTestContext(e, req)
	setPathParams(c, map[string]string{"id": "1"})

	mockService.EXPECT().
		SetActive(gomock.Any(), int64(1), false).
		Return(nil)

	err := h.SetActive(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCredentialHandler_Delete_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockCredentialService(ctrl)
	h := handler.NewCredentialHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodDelete, "/credentials/1", nil)
	c, rec := newTestContext(e, req)
	setPathParams(c, map[string]string{"id": "1"})

	mockService.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)

	err := h.Delete(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCredentialHandler_Usage_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockCredentialService(ctrl)
	h := handler.NewCredentialHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodGet, "/credentials/1/usage", nil)
	c, rec := newTestContext(e, req)
	setPathParams(c, map[string]string{"id": "1"})

	mockService.EXPECT().
		Usage(gomock.Any(), int64(1), gomock.Any()).
		Return(service.UsageDTO{
			CredentialID: "1",
			Windows: []service.WindowUsageDTO{
				{Kind: "minute", Used: 1, Limit: 10, ResetsInS: 30},
				{Kind: "day", Used: 4, Limit: 100, ResetsInS: 3600},
				{Kind: "month", Used: 40, Limit: 1000, ResetsInS: 86400},
			},
		}, nil)

	err := h.Usage(c)
	require.NoError(t, err)

	var resp handler.UsageResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, "1", resp.CredentialID)
	require.Len(t, resp.Windows, 3)
	require.Equal(t, "minute", resp.Windows[0].Window)
	require.Equal(t, int64(30), resp.Windows[0].ResetsInSecond)
}

func TestCredentialHandler_Usage_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockCredentialService(ctrl)
	h := handler.NewCredentialHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodGet, "/credentials/9/usage", nil)
	c, rec := newTestContext(e, req)
	setPathParams(c, map[string]string{"id": "9"})

	mockService.EXPECT().
		Usage(gomock.Any(), int64(9), gomock.Any()).
		Return(service.UsageDTO{}, service.ErrNotFound)

	err := h.Usage(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
