package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/locationgenius/dashboard/internal/application/messagetemplate/dto"
	"github.com/locationgenius/dashboard/internal/shared/constants"
	"github.com/locationgenius/dashboard/internal/shared/errors"
	"github.com/locationgenius/dashboard/internal/shared/logger"
	"github.com/locationgenius/dashboard/internal/shared/utils"
)

type MessageTemplateHandler struct {
	service MessageTemplateService
	logger  logger.Interface
}

func NewMessageTemplateHandler(service MessageTemplateService, logger logger.Interface) *MessageTemplateHandler {
	return &MessageTemplateHandler{
		service: service,
		logger:  logger,
	}
}

// ListActiveTemplates godoc
// @Summary List active message templates
// @Security Bearer
// @Tags message-templates
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]dto.TemplateResponse}
// @Failure 503 {object} utils.APIResponse "Template store unavailable"
// @Router /message-templates [get]
func (h *MessageTemplateHandler) ListActiveTemplates(c *gin.Context) {
	result, err := h.service.ListActiveTemplates(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTemplateByType godoc
// @Summary Get the active template of a type
// @Security Bearer
// @Tags message-templates
// @Produce json
// @Param type path string true "Template type" example(welcome)
// @Success 200 {object} utils.APIResponse{data=dto.TemplateResponse}
// @Failure 404 {object} utils.APIResponse "No active template"
// @Router /message-templates/type/{type} [get]
func (h *MessageTemplateHandler) GetTemplateByType(c *gin.Context) {
	result, err := h.service.GetTemplateByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RenderTemplate godoc
// @Summary Render the active template of a type
// @Security Bearer
// @Tags message-templates
// @Accept json
// @Produce json
// @Param request body dto.RenderTemplateRequest true "Type and variables"
// @Success 200 {object} utils.APIResponse{data=dto.RenderResponse}
// @Router /message-templates/render [post]
func (h *MessageTemplateHandler) RenderTemplate(c *gin.Context) {
	var req dto.RenderTemplateRequest
	if !h.bindJSON(c, &req, "render template") {
		return
	}

	result, err := h.service.RenderTemplate(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// PreviewContent godoc
// @Summary Render unsaved template content
// @Security Bearer
// @Tags message-templates
// @Accept json
// @Produce json
// @Param request body dto.RenderContentRequest true "Content and variables"
// @Success 200 {object} utils.APIResponse{data=dto.RenderResponse}
// @Router /message-templates/preview [post]
func (h *MessageTemplateHandler) PreviewContent(c *gin.Context) {
	var req dto.RenderContentRequest
	if !h.bindJSON(c, &req, "preview content") {
		return
	}

	result, err := h.service.RenderContent(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListAllTemplates godoc
// @Summary List every template, inactive ones included
// @Security Bearer
// @Tags admin-message-templates
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /admin/message-templates [get]
func (h *MessageTemplateHandler) ListAllTemplates(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.service.ListAllTemplates(c.Request.Context(), dto.ListTemplatesRequest{
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Templates, result.Total, p)
}

// CreateTemplate godoc
// @Summary Create a message template
// @Security Bearer
// @Tags admin-message-templates
// @Accept json
// @Produce json
// @Param request body dto.CreateTemplateRequest true "Template data"
// @Success 201 {object} utils.APIResponse{data=dto.TemplateResponse}
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Router /admin/message-templates [post]
func (h *MessageTemplateHandler) CreateTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if !h.bindJSON(c, &req, "create template") {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("User not authenticated"))
		return
	}
	req.CreatedBy = userID

	result, err := h.service.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Message template created successfully")
}

// UpdateTemplate godoc
// @Summary Update a message template
// @Security Bearer
// @Tags admin-message-templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param request body dto.UpdateTemplateRequest true "Template data"
// @Success 200 {object} utils.APIResponse{data=dto.TemplateResponse}
// @Failure 404 {object} utils.APIResponse "Template not found"
// @Router /admin/message-templates/{id} [put]
func (h *MessageTemplateHandler) UpdateTemplate(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateTemplateRequest
	if !h.bindJSON(c, &req, "update template", "template_id", id) {
		return
	}

	result, err := h.service.UpdateTemplate(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message template updated successfully", result)
}

// UpdateContentByType godoc
// @Summary Replace the content of the active template of a type
// @Security Bearer
// @Tags admin-message-templates
// @Accept json
// @Produce json
// @Param type path string true "Template type"
// @Param request body dto.UpdateTemplateContentRequest true "New content"
// @Success 200 {object} utils.APIResponse{data=dto.TemplateResponse}
// @Router /admin/message-templates/type/{type}/content [put]
func (h *MessageTemplateHandler) UpdateContentByType(c *gin.Context) {
	templateType := c.Param("type")

	var req dto.UpdateTemplateContentRequest
	if !h.bindJSON(c, &req, "update template content", "template_type", templateType) {
		return
	}

	result, err := h.service.UpdateTemplateContentByType(c.Request.Context(), templateType, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message template updated successfully", result)
}

// SetTemplateStatus godoc
// @Summary Activate or deactivate a template
// @Security Bearer
// @Tags admin-message-templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param request body dto.SetTemplateStatusRequest true "Status"
// @Success 200 {object} utils.APIResponse{data=dto.TemplateResponse}
// @Router /admin/message-templates/{id}/status [patch]
func (h *MessageTemplateHandler) SetTemplateStatus(c *gin.Context) {
	id := c.Param("id")

	var req dto.SetTemplateStatusRequest
	if !h.bindJSON(c, &req, "set template status", "template_id", id) {
		return
	}

	result, err := h.service.SetTemplateActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message template status updated", result)
}

// SendTemplate godoc
// @Summary Render a template and deliver it through Telegram
// @Security Bearer
// @Tags admin-message-templates
// @Accept json
// @Produce json
// @Param request body dto.SendTemplateRequest true "Type, chat and variables"
// @Success 200 {object} utils.APIResponse{data=dto.SendTemplateResponse}
// @Failure 502 {object} utils.APIResponse "Telegram rejected the message"
// @Failure 429 {object} utils.APIResponse "Telegram rate limit, see Retry-After"
// @Failure 503 {object} utils.APIResponse "Telegram not configured"
// @Router /admin/message-templates/send [post]
func (h *MessageTemplateHandler) SendTemplate(c *gin.Context) {
	var req dto.SendTemplateRequest
	if !h.bindJSON(c, &req, "send template") {
		return
	}

	result, err := h.service.SendTemplate(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message sent", result)
}

// bindJSON decodes the body and runs struct validation, answering 400 on failure.
func (h *MessageTemplateHandler) bindJSON(c *gin.Context, req any, op string, kv ...any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warnw("invalid request body for "+op, append(kv, "error", err)...)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return false
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return false
	}
	return true
}

func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
