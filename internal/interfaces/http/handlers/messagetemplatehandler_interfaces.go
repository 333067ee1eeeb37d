package handlers

import (
	"context"

	"github.com/locationgenius/dashboard/internal/application/messagetemplate/dto"
)

// MessageTemplateService is the subset of the template application service the handler uses.
type MessageTemplateService interface {
	ListActiveTemplates(ctx context.Context) ([]*dto.TemplateResponse, error)
	GetTemplateByType(ctx context.Context, templateType string) (*dto.TemplateResponse, error)
	RenderTemplate(ctx context.Context, req dto.RenderTemplateRequest) (*dto.RenderResponse, error)
	RenderContent(ctx context.Context, req dto.RenderContentRequest) (*dto.RenderResponse, error)
	CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	UpdateTemplate(ctx context.Context, id string, req dto.UpdateTemplateRequest) (*dto.TemplateResponse, error)
	UpdateTemplateContentByType(ctx context.Context, templateType string, req dto.UpdateTemplateContentRequest) (*dto.TemplateResponse, error)
	SetTemplateActive(ctx context.Context, id string, active bool) (*dto.TemplateResponse, error)
	ListAllTemplates(ctx context.Context, req dto.ListTemplatesRequest) (*dto.ListTemplatesResponse, error)
	SendTemplate(ctx context.Context, req dto.SendTemplateRequest) (*dto.SendTemplateResponse, error)
}
