// Package messagetemplate serves stored message templates and renders them
// for the dashboard and the Telegram bot.
package messagetemplate

import (
	"context"

	"github.com/locationgenius/dashboard/internal/application/messagetemplate/dto"
	"github.com/locationgenius/dashboard/internal/application/messagetemplate/usecases"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

type Service struct {
	listActive    *usecases.ListActiveTemplatesUseCase
	getByType     *usecases.GetTemplateByTypeUseCase
	render        *usecases.RenderTemplateUseCase
	renderContent *usecases.RenderContentUseCase
	create        *usecases.CreateTemplateUseCase
	update        *usecases.UpdateTemplateUseCase
	updateContent *usecases.UpdateTemplateContentUseCase
	setActive     *usecases.SetTemplateActiveUseCase
	listAll       *usecases.ListAllTemplatesUseCase
	send          *usecases.SendTemplateUseCase
}

// NewService wires the use cases. sender may be nil when Telegram delivery
// is not configured.
func NewService(
	repo usecases.TemplateRepository,
	markdown usecases.MarkdownRenderer,
	sender usecases.MessageSender,
	logger logger.Interface,
) *Service {
	return &Service{
		listActive:    usecases.NewListActiveTemplatesUseCase(repo, logger),
		getByType:     usecases.NewGetTemplateByTypeUseCase(repo, logger),
		render:        usecases.NewRenderTemplateUseCase(repo, markdown, logger),
		renderContent: usecases.NewRenderContentUseCase(markdown, logger),
		create:        usecases.NewCreateTemplateUseCase(repo, logger),
		update:        usecases.NewUpdateTemplateUseCase(repo, logger),
		updateContent: usecases.NewUpdateTemplateContentUseCase(repo, logger),
		setActive:     usecases.NewSetTemplateActiveUseCase(repo, logger),
		listAll:       usecases.NewListAllTemplatesUseCase(repo, logger),
		send:          usecases.NewSendTemplateUseCase(repo, sender, logger),
	}
}

func (s *Service) ListActiveTemplates(ctx context.Context) ([]*dto.TemplateResponse, error) {
	return s.listActive.Execute(ctx)
}

func (s *Service) GetTemplateByType(ctx context.Context, templateType string) (*dto.TemplateResponse, error) {
	return s.getByType.Execute(ctx, templateType)
}

func (s *Service) RenderTemplate(ctx context.Context, req dto.RenderTemplateRequest) (*dto.RenderResponse, error) {
	return s.render.Execute(ctx, req)
}

func (s *Service) RenderContent(ctx context.Context, req dto.RenderContentRequest) (*dto.RenderResponse, error) {
	return s.renderContent.Execute(ctx, req)
}

func (s *Service) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	return s.create.Execute(ctx, req)
}

func (s *Service) UpdateTemplate(ctx context.Context, id string, req dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	return s.update.Execute(ctx, id, req)
}

func (s *Service) UpdateTemplateContentByType(ctx context.Context, templateType string, req dto.UpdateTemplateContentRequest) (*dto.TemplateResponse, error) {
	return s.updateContent.Execute(ctx, templateType, req)
}

func (s *Service) SetTemplateActive(ctx context.Context, id string, active bool) (*dto.TemplateResponse, error) {
	return s.setActive.Execute(ctx, id, active)
}

func (s *Service) ListAllTemplates(ctx context.Context, req dto.ListTemplatesRequest) (*dto.ListTemplatesResponse, error) {
	return s.listAll.Execute(ctx, req)
}

func (s *Service) SendTemplate(ctx context.Context, req dto.SendTemplateRequest) (*dto.SendTemplateResponse, error) {
	return s.send.Execute(ctx, req)
}
