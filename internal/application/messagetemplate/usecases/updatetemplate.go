package usecases

import (
	"context"

	"github.com/locationgenius/dashboard/internal/application/messagetemplate/dto"
	"github.com/locationgenius/dashboard/internal/domain/messagetemplate"
	"github.com/locationgenius/dashboard/internal/shared/errors"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

type UpdateTemplateUseCase struct {
	repo   TemplateRepository
	logger logger.Interface
}

func NewUpdateTemplateUseCase(repo TemplateRepository, logger logger.Interface) *UpdateTemplateUseCase {
	return &UpdateTemplateUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *UpdateTemplateUseCase) Execute(ctx context.Context, id string, req dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	uc.logger.Infow("executing update message template use case", "id", id)

	template, err := getByID(ctx, uc.repo, uc.logger, id)
	if err != nil {
		return nil, err
	}

	if err := template.Update(req.Name, req.Content, req.Variables); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.repo.Update(ctx, template); err != nil {
		return nil, storeUnavailable(uc.logger, "update", err, "id", id)
	}

	uc.logger.Infow("message template updated", "id", id)
	return dto.ToTemplateResponse(template), nil
}

type UpdateTemplateContentUseCase struct {
	repo   TemplateRepository
	logger logger.Interface
}

func NewUpdateTemplateContentUseCase(repo TemplateRepository, logger logger.Interface) *UpdateTemplateContentUseCase {
	return &UpdateTemplateContentUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute replaces the content of the active template of the given type,
// the one readers currently receive.
func (uc *UpdateTemplateContentUseCase) Execute(ctx context.Context, templateType string, req dto.UpdateTemplateContentRequest) (*dto.TemplateResponse, error) {
	uc.logger.Infow("executing update message template content use case", "template_type", templateType)

	template, err := findActiveByType(ctx, uc.repo, uc.logger, templateType)
	if err != nil {
		return nil, err
	}

	if err := template.UpdateContent(req.Content); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.repo.Update(ctx, template); err != nil {
		return nil, storeUnavailable(uc.logger, "update content", err, "template_type", templateType)
	}

	uc.logger.Infow("message template content updated", "id", template.ID(), "template_type", templateType)
	return dto.ToTemplateResponse(template), nil
}

type SetTemplateActiveUseCase struct {
	repo   TemplateRepository
	logger logger.Interface
}

func NewSetTemplateActiveUseCase(repo TemplateRepository, logger logger.Interface) *SetTemplateActiveUseCase {
	return &SetTemplateActiveUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *SetTemplateActiveUseCase) Execute(ctx context.Context, id string, active bool) (*dto.TemplateResponse, error) {
	template, err := getByID(ctx, uc.repo, uc.logger, id)
	if err != nil {
		return nil, err
	}

	if active {
		template.Activate()
	} else {
		template.Deactivate()
	}

	if err := uc.repo.Update(ctx, template); err != nil {
		return nil, storeUnavailable(uc.logger, "set active", err, "id", id)
	}

	uc.logger.Infow("message template status changed", "id", id, "is_active", active)
	return dto.ToTemplateResponse(template), nil
}

func getByID(ctx context.Context, repo TemplateRepository, log logger.Interface, id string) (*messagetemplate.MessageTemplate, error) {
	template, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeUnavailable(log, "get by id", err, "id", id)
	}
	if template == nil {
		return nil, errors.NewNotFoundError("message template not found", id)
	}
	return template, nil
}
