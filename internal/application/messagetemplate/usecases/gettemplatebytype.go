package usecases

import (
	"context"

	"github.com/locationgenius/dashboard/internal/application/messagetemplate/dto"
	"github.com/locationgenius/dashboard/internal/domain/messagetemplate"
	"github.com/locationgenius/dashboard/internal/shared/errors"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

type GetTemplateByTypeUseCase struct {
	repo   TemplateRepository
	logger logger.Interface
}

func NewGetTemplateByTypeUseCase(repo TemplateRepository, logger logger.Interface) *GetTemplateByTypeUseCase {
	return &GetTemplateByTypeUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *GetTemplateByTypeUseCase) Execute(ctx context.Context, templateType string) (*dto.TemplateResponse, error) {
	template, err := findActiveByType(ctx, uc.repo, uc.logger, templateType)
	if err != nil {
		return nil, err
	}
	return dto.ToTemplateResponse(template), nil
}

// findActiveByType turns the store's absent result into a not-found error.
func findActiveByType(
	ctx context.Context,
	repo TemplateRepository,
	log logger.Interface,
	templateType string,
) (*messagetemplate.MessageTemplate, error) {
	tt := messagetemplate.TemplateType(templateType)
	if !tt.IsValid() {
		return nil, errors.NewValidationError("invalid template type", templateType)
	}

	template, err := repo.GetActiveByType(ctx, tt)
	if err != nil {
		return nil, storeUnavailable(log, "get active by type", err, "template_type", templateType)
	}
	if template == nil {
		return nil, templateNotFound(templateType)
	}
	return template, nil
}
