package usecases

import (
	"context"

	"github.com/locationgenius/dashboard/internal/application/messagetemplate/dto"
	"github.com/locationgenius/dashboard/internal/domain/messagetemplate"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

type RenderTemplateUseCase struct {
	repo     TemplateRepository
	markdown MarkdownRenderer
	logger   logger.Interface
}

func NewRenderTemplateUseCase(
	repo TemplateRepository,
	markdown MarkdownRenderer,
	logger logger.Interface,
) *RenderTemplateUseCase {
	return &RenderTemplateUseCase{
		repo:     repo,
		markdown: markdown,
		logger:   logger,
	}
}

func (uc *RenderTemplateUseCase) Execute(ctx context.Context, req dto.RenderTemplateRequest) (*dto.RenderResponse, error) {
	template, err := findActiveByType(ctx, uc.repo, uc.logger, req.Type)
	if err != nil {
		return nil, err
	}

	resp := renderContent(template.Content(), req.Variables, req.PreviewHTML, uc.markdown, uc.logger)
	resp.TemplateID = template.ID()
	resp.Type = template.Type().String()

	if len(resp.MissingVariables) > 0 {
		uc.logger.Debugw("rendered template with unresolved placeholders",
			"template_type", req.Type,
			"missing", resp.MissingVariables,
		)
	}

	return resp, nil
}

type RenderContentUseCase struct {
	markdown MarkdownRenderer
	logger   logger.Interface
}

func NewRenderContentUseCase(markdown MarkdownRenderer, logger logger.Interface) *RenderContentUseCase {
	return &RenderContentUseCase{
		markdown: markdown,
		logger:   logger,
	}
}

// Execute renders unsaved content, used by the editor preview.
func (uc *RenderContentUseCase) Execute(_ context.Context, req dto.RenderContentRequest) (*dto.RenderResponse, error) {
	return renderContent(req.Content, req.Variables, req.PreviewHTML, uc.markdown, uc.logger), nil
}

func renderContent(
	content string,
	vars map[string]any,
	withHTML bool,
	markdown MarkdownRenderer,
	log logger.Interface,
) *dto.RenderResponse {
	resp := &dto.RenderResponse{
		Message:          messagetemplate.Render(content, vars),
		VariablesUsed:    messagetemplate.UsedVariables(content, vars),
		MissingVariables: messagetemplate.MissingVariables(content, vars),
	}

	if withHTML && markdown != nil {
		html, err := markdown.ToHTMLSanitized(resp.Message)
		if err != nil {
			log.Warnw("failed to convert rendered message to html", "error", err)
		} else {
			resp.HTML = html
		}
	}

	return resp
}
