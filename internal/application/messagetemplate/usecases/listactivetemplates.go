package usecases

import (
	"context"

	"github.com/locationgenius/dashboard/internal/application/messagetemplate/dto"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

type ListActiveTemplatesUseCase struct {
	repo   TemplateRepository
	logger logger.Interface
}

func NewListActiveTemplatesUseCase(repo TemplateRepository, logger logger.Interface) *ListActiveTemplatesUseCase {
	return &ListActiveTemplatesUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ListActiveTemplatesUseCase) Execute(ctx context.Context) ([]*dto.TemplateResponse, error) {
	templates, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, storeUnavailable(uc.logger, "list active", err)
	}

	uc.logger.Debugw("listed active message templates", "count", len(templates))
	return dto.ToTemplateResponses(templates), nil
}
