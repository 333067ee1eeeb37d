package usecases

import (
	"context"

	"github.com/locationgenius/dashboard/internal/application/messagetemplate/dto"
	"github.com/locationgenius/dashboard/internal/shared/logger"
	"github.com/locationgenius/dashboard/internal/shared/utils"
)

type ListAllTemplatesUseCase struct {
	repo   TemplateRepository
	logger logger.Interface
}

func NewListAllTemplatesUseCase(repo TemplateRepository, logger logger.Interface) *ListAllTemplatesUseCase {
	return &ListAllTemplatesUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ListAllTemplatesUseCase) Execute(ctx context.Context, req dto.ListTemplatesRequest) (*dto.ListTemplatesResponse, error) {
	p := utils.NormalizePagination(req.Page, req.PageSize)

	templates, total, err := uc.repo.ListAll(ctx, p.PageSize, p.Offset())
	if err != nil {
		return nil, storeUnavailable(uc.logger, "list all", err)
	}

	return &dto.ListTemplatesResponse{
		Templates: dto.ToTemplateResponses(templates),
		Total:     total,
		Page:      p.Page,
		PageSize:  p.PageSize,
	}, nil
}
