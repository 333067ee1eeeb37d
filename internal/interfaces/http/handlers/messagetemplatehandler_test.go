package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locationgenius/dashboard/internal/application/messagetemplate/dto"
	"github.com/locationgenius/dashboard/internal/interfaces/http/handlers/testutil"
	"github.com/locationgenius/dashboard/internal/shared/errors"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

// =====================================================================
// Mock template service
// =====================================================================

type mockTemplateService struct {
	listActiveFn    func(ctx context.Context) ([]*dto.TemplateResponse, error)
	getByTypeFn     func(ctx context.Context, templateType string) (*dto.TemplateResponse, error)
	renderFn        func(ctx context.Context, req dto.RenderTemplateRequest) (*dto.RenderResponse, error)
	renderContentFn func(ctx context.Context, req dto.RenderContentRequest) (*dto.RenderResponse, error)
	createFn        func(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	updateFn        func(ctx context.Context, id string, req dto.UpdateTemplateRequest) (*dto.TemplateResponse, error)
	updateContentFn func(ctx context.Context, templateType string, req dto.UpdateTemplateContentRequest) (*dto.TemplateResponse, error)
	setActiveFn     func(ctx context.Context, id string, active bool) (*dto.TemplateResponse, error)
	listAllFn       func(ctx context.Context, req dto.ListTemplatesRequest) (*dto.ListTemplatesResponse, error)
	sendFn          func(ctx context.Context, req dto.SendTemplateRequest) (*dto.SendTemplateResponse, error)
}

func (m *mockTemplateService) ListActiveTemplates(ctx context.Context) ([]*dto.TemplateResponse, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return []*dto.TemplateResponse{}, nil
}

func (m *mockTemplateService) GetTemplateByType(ctx context.Context, templateType string) (*dto.TemplateResponse, error) {
	if m.getByTypeFn != nil {
		return m.getByTypeFn(ctx, templateType)
	}
	return nil, nil
}

func (m *mockTemplateService) RenderTemplate(ctx context.Context, req dto.RenderTemplateRequest) (*dto.RenderResponse, error) {
	if m.renderFn != nil {
		return m.renderFn(ctx, req)
	}
	return nil, nil
}

func (m *mockTemplateService) RenderContent(ctx context.Context, req dto.RenderContentRequest) (*dto.RenderResponse, error) {
	if m.renderContentFn != nil {
		return m.renderContentFn(ctx, req)
	}
	return nil, nil
}

func (m *mockTemplateService) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return nil, nil
}

func (m *mockTemplateService) UpdateTemplate(ctx context.Context, id string, req dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, req)
	}
	return nil, nil
}

func (m *mockTemplateService) UpdateTemplateContentByType(ctx context.Context, templateType string, req dto.UpdateTemplateContentRequest) (*dto.TemplateResponse, error) {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, templateType, req)
	}
	return nil, nil
}

func (m *mockTemplateService) SetTemplateActive(ctx context.Context, id string, active bool) (*dto.TemplateResponse, error) {
	if m.setActiveFn != nil {
		return m.setActiveFn(ctx, id, active)
	}
	return nil, nil
}

func (m *mockTemplateService) ListAllTemplates(ctx context.Context, req dto.ListTemplatesRequest) (*dto.ListTemplatesResponse, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx, req)
	}
	return &dto.ListTemplatesResponse{}, nil
}

func (m *mockTemplateService) SendTemplate(ctx context.Context, req dto.SendTemplateRequest) (*dto.SendTemplateResponse, error) {
	if m.sendFn != nil {
		return m.sendFn(ctx, req)
	}
	return nil, nil
}

func newTemplateHandler(svc *mockTemplateService) *MessageTemplateHandler {
	return NewMessageTemplateHandler(svc, logger.NewDiscardLogger())
}

const welcomeContent = "🎉 *Welcome to Location Genius!*\n\nHi {name}!"

// =====================================================================
// Read endpoints
// =====================================================================

func TestListActiveTemplates_Success(t *testing.T) {
	svc := &mockTemplateService{
		listActiveFn: func(ctx context.Context) ([]*dto.TemplateResponse, error) {
			return []*dto.TemplateResponse{
				{ID: "t-1", Type: "welcome", Content: welcomeContent, Variables: []string{"name"}, IsActive: true},
			}, nil
		},
	}
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/message-templates", nil)

	newTemplateHandler(svc).ListActiveTemplates(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var items []dto.TemplateResponse
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "welcome", items[0].Type)
}

func TestListActiveTemplates_StoreUnavailable(t *testing.T) {
	svc := &mockTemplateService{
		listActiveFn: func(ctx context.Context) ([]*dto.TemplateResponse, error) {
			return nil, errors.NewServiceUnavailableError("Message templates are temporarily unavailable")
		},
	}
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/message-templates", nil)

	newTemplateHandler(svc).ListActiveTemplates(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "service_unavailable", resp.Error.Type)
}

func TestListActiveTemplates_UnexpectedErrorIsOpaque(t *testing.T) {
	svc := &mockTemplateService{
		listActiveFn: func(ctx context.Context) ([]*dto.TemplateResponse, error) {
			return nil, stderrors.New("dial tcp 10.0.0.5:3306: connection refused")
		},
	}
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/message-templates", nil)

	newTemplateHandler(svc).ListActiveTemplates(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestGetTemplateByType(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "found", wantStatus: http.StatusOK},
		{name: "not found", err: errors.NewNotFoundError("Message template not found", "location_result"), wantStatus: http.StatusNotFound},
		{name: "bad type", err: errors.NewValidationError("Invalid template type"), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotType string
			svc := &mockTemplateService{
				getByTypeFn: func(ctx context.Context, templateType string) (*dto.TemplateResponse, error) {
					gotType = templateType
					if tt.err != nil {
						return nil, tt.err
					}
					return &dto.TemplateResponse{ID: "t-1", Type: templateType}, nil
				},
			}
			c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/message-templates/type/location_result", nil)
			testutil.SetURLParam(c, "type", "location_result")

			newTemplateHandler(svc).GetTemplateByType(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "location_result", gotType)
		})
	}
}

// =====================================================================
// Render endpoints
// =====================================================================

func TestRenderTemplate_PassesVariables(t *testing.T) {
	var got dto.RenderTemplateRequest
	svc := &mockTemplateService{
		renderFn: func(ctx context.Context, req dto.RenderTemplateRequest) (*dto.RenderResponse, error) {
			got = req
			return &dto.RenderResponse{
				TemplateID:       "t-1",
				Type:             req.Type,
				Message:          "Hi Jane!",
				VariablesUsed:    []string{"name"},
				MissingVariables: []string{},
			}, nil
		},
	}
	body := map[string]any{
		"type":         "welcome",
		"variables":    map[string]any{"name": "Jane", "visits": 3},
		"preview_html": true,
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/message-templates/render", body)

	newTemplateHandler(svc).RenderTemplate(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "welcome", got.Type)
	assert.Equal(t, "Jane", got.Variables["name"])
	assert.EqualValues(t, 3, got.Variables["visits"])
	assert.True(t, got.PreviewHTML)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var rendered dto.RenderResponse
	require.NoError(t, json.Unmarshal(resp.Data, &rendered))
	assert.Equal(t, "Hi Jane!", rendered.Message)
}

func TestRenderTemplate_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"type":`},
		{name: "missing type", body: `{"variables":{"name":"Jane"}}`},
		{name: "type not a slug", body: `{"type":"Location Result"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := &mockTemplateService{
				renderFn: func(ctx context.Context, req dto.RenderTemplateRequest) (*dto.RenderResponse, error) {
					called = true
					return nil, nil
				},
			}
			c, w := testutil.NewRawTestContext(http.MethodPost, "/api/v1/message-templates/render", tt.body)

			newTemplateHandler(svc).RenderTemplate(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, called)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.Equal(t, "validation_error", resp.Error.Type)
		})
	}
}

func TestPreviewContent(t *testing.T) {
	svc := &mockTemplateService{
		renderContentFn: func(ctx context.Context, req dto.RenderContentRequest) (*dto.RenderResponse, error) {
			assert.Equal(t, "City: {city}", req.Content)
			return &dto.RenderResponse{Message: "City: Austin", VariablesUsed: []string{"city"}, MissingVariables: []string{}}, nil
		},
	}
	body := map[string]any{"content": "City: {city}", "variables": map[string]any{"city": "Austin"}}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/message-templates/preview", body)

	newTemplateHandler(svc).PreviewContent(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "City: Austin")
}

// =====================================================================
// Admin endpoints
// =====================================================================

func TestCreateTemplate_SetsCreator(t *testing.T) {
	var got dto.CreateTemplateRequest
	svc := &mockTemplateService{
		createFn: func(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
			got = req
			return &dto.TemplateResponse{ID: "t-9", Name: req.Name, Type: req.Type, CreatedBy: req.CreatedBy, IsActive: true}, nil
		},
	}
	body := map[string]any{"name": "Welcome Message", "type": "welcome", "content": welcomeContent}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/message-templates", body)
	testutil.SetAuthContext(c, "user-42", "admin")

	newTemplateHandler(svc).CreateTemplate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user-42", got.CreatedBy)
	assert.Equal(t, "welcome", got.Type)
}

func TestCreateTemplate_RequiresUser(t *testing.T) {
	body := map[string]any{"name": "Welcome Message", "type": "welcome", "content": welcomeContent}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/message-templates", body)

	newTemplateHandler(&mockTemplateService{}).CreateTemplate(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateTemplate_ContentTooShort(t *testing.T) {
	body := map[string]any{"name": "Welcome", "type": "welcome", "content": "Hi"}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/message-templates", body)
	testutil.SetAuthContext(c, "user-42", "admin")

	newTemplateHandler(&mockTemplateService{}).CreateTemplate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "content")
}

func TestUpdateTemplate(t *testing.T) {
	svc := &mockTemplateService{
		updateFn: func(ctx context.Context, id string, req dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
			if id != "t-1" {
				return nil, errors.NewNotFoundError("Message template not found", id)
			}
			return &dto.TemplateResponse{ID: id, Name: req.Name, Content: req.Content}, nil
		},
	}
	body := map[string]any{"name": "Welcome v2", "content": welcomeContent}

	c, w := testutil.NewTestContext(http.MethodPut, "/api/v1/admin/message-templates/t-1", body)
	testutil.SetURLParam(c, "id", "t-1")
	newTemplateHandler(svc).UpdateTemplate(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = testutil.NewTestContext(http.MethodPut, "/api/v1/admin/message-templates/t-2", body)
	testutil.SetURLParam(c, "id", "t-2")
	newTemplateHandler(svc).UpdateTemplate(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateContentByType(t *testing.T) {
	var gotType, gotContent string
	svc := &mockTemplateService{
		updateContentFn: func(ctx context.Context, templateType string, req dto.UpdateTemplateContentRequest) (*dto.TemplateResponse, error) {
			gotType, gotContent = templateType, req.Content
			return &dto.TemplateResponse{ID: "t-1", Type: templateType, Content: req.Content}, nil
		},
	}
	c, w := testutil.NewTestContext(http.MethodPut, "/api/v1/admin/message-templates/type/welcome/content",
		map[string]any{"content": welcomeContent})
	testutil.SetURLParam(c, "type", "welcome")

	newTemplateHandler(svc).UpdateContentByType(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "welcome", gotType)
	assert.Equal(t, welcomeContent, gotContent)
}

func TestSetTemplateStatus(t *testing.T) {
	var gotActive *bool
	svc := &mockTemplateService{
		setActiveFn: func(ctx context.Context, id string, active bool) (*dto.TemplateResponse, error) {
			gotActive = &active
			return &dto.TemplateResponse{ID: id, IsActive: active}, nil
		},
	}

	c, w := testutil.NewRawTestContext(http.MethodPatch, "/api/v1/admin/message-templates/t-1/status", `{"is_active":false}`)
	testutil.SetURLParam(c, "id", "t-1")
	newTemplateHandler(svc).SetTemplateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotActive)
	assert.False(t, *gotActive)

	c, w = testutil.NewRawTestContext(http.MethodPatch, "/api/v1/admin/message-templates/t-1/status", `{}`)
	testutil.SetURLParam(c, "id", "t-1")
	newTemplateHandler(svc).SetTemplateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAllTemplates_Pagination(t *testing.T) {
	var got dto.ListTemplatesRequest
	svc := &mockTemplateService{
		listAllFn: func(ctx context.Context, req dto.ListTemplatesRequest) (*dto.ListTemplatesResponse, error) {
			got = req
			return &dto.ListTemplatesResponse{
				Templates: []*dto.TemplateResponse{{ID: "t-1"}, {ID: "t-2"}},
				Total:     12,
				Page:      req.Page,
				PageSize:  req.PageSize,
			}, nil
		},
	}
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/admin/message-templates", nil)
	testutil.SetQueryParams(c, map[string]string{"page": "2", "page_size": "5"})

	newTemplateHandler(svc).ListAllTemplates(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 5, got.PageSize)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list struct {
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.EqualValues(t, 12, list.Total)
	assert.Equal(t, 3, list.TotalPages)
}

func TestSendTemplate(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "delivered", wantStatus: http.StatusOK},
		{name: "telegram disabled", err: errors.NewServiceUnavailableError("Telegram delivery is not configured"), wantStatus: http.StatusServiceUnavailable},
		{name: "telegram rejected", err: errors.NewBadGatewayError("Telegram rejected the message"), wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockTemplateService{
				sendFn: func(ctx context.Context, req dto.SendTemplateRequest) (*dto.SendTemplateResponse, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &dto.SendTemplateResponse{TemplateID: "t-1", ChatID: req.ChatID, Message: "Hi Jane!"}, nil
				},
			}
			body := map[string]any{"type": "welcome", "chat_id": 123456789, "variables": map[string]any{"name": "Jane"}}
			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/message-templates/send", body)

			newTemplateHandler(svc).SendTemplate(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestSendTemplate_MissingChat(t *testing.T) {
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/message-templates/send", map[string]any{"type": "welcome"})

	newTemplateHandler(&mockTemplateService{}).SendTemplate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
