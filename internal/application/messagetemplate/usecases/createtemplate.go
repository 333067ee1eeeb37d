package usecases

import (
	"context"

	"github.com/locationgenius/dashboard/internal/application/messagetemplate/dto"
	"github.com/locationgenius/dashboard/internal/domain/messagetemplate"
	"github.com/locationgenius/dashboard/internal/shared/errors"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

type CreateTemplateUseCase struct {
	repo   TemplateRepository
	logger logger.Interface
}

func NewCreateTemplateUseCase(repo TemplateRepository, logger logger.Interface) *CreateTemplateUseCase {
	return &CreateTemplateUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *CreateTemplateUseCase) Execute(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	uc.logger.Infow("executing create message template use case", "template_type", req.Type, "name", req.Name)

	template, err := messagetemplate.NewMessageTemplate(
		req.Name,
		messagetemplate.TemplateType(req.Type),
		req.Content,
		req.Variables,
		req.CreatedBy,
	)
	if err != nil {
		uc.logger.Warnw("invalid message template", "template_type", req.Type, "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.repo.Create(ctx, template); err != nil {
		return nil, storeUnavailable(uc.logger, "create", err, "template_type", req.Type)
	}

	uc.logger.Infow("message template created", "id", template.ID(), "template_type", req.Type)
	return dto.ToTemplateResponse(template), nil
}
