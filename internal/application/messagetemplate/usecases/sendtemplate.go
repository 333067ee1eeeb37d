package usecases

import (
	"context"

	"github.com/locationgenius/dashboard/internal/application/messagetemplate/dto"
	"github.com/locationgenius/dashboard/internal/domain/messagetemplate"
	"github.com/locationgenius/dashboard/internal/infrastructure/telegram"
	"github.com/locationgenius/dashboard/internal/shared/errors"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

type SendTemplateUseCase struct {
	repo   TemplateRepository
	sender MessageSender
	logger logger.Interface
}

// NewSendTemplateUseCase accepts a nil sender when Telegram is not configured;
// Execute then reports the service as unavailable.
func NewSendTemplateUseCase(repo TemplateRepository, sender MessageSender, logger logger.Interface) *SendTemplateUseCase {
	return &SendTemplateUseCase{
		repo:   repo,
		sender: sender,
		logger: logger,
	}
}

func (uc *SendTemplateUseCase) Execute(ctx context.Context, req dto.SendTemplateRequest) (*dto.SendTemplateResponse, error) {
	if uc.sender == nil {
		return nil, errors.NewServiceUnavailableError("telegram delivery is not configured")
	}

	template, err := findActiveByType(ctx, uc.repo, uc.logger, req.Type)
	if err != nil {
		return nil, err
	}

	message := template.Render(req.Variables)
	if err := uc.sender.SendMessage(ctx, req.ChatID, message); err != nil {
		return nil, uc.deliveryError(req, err)
	}

	uc.logger.Infow("message template sent", "template_type", req.Type, "chat_id", req.ChatID)
	return &dto.SendTemplateResponse{
		TemplateID:       template.ID(),
		ChatID:           req.ChatID,
		Message:          message,
		MissingVariables: messagetemplate.MissingVariables(template.Content(), req.Variables),
	}, nil
}

func (uc *SendTemplateUseCase) deliveryError(req dto.SendTemplateRequest, err error) error {
	if telegram.IsBotBlocked(err) {
		uc.logger.Warnw("bot blocked by chat, message template not delivered",
			"template_type", req.Type,
			"chat_id", req.ChatID,
		)
		return errors.NewBadGatewayError("telegram chat has blocked the bot")
	}

	if retryAfter := telegram.GetRetryAfter(err); retryAfter > 0 {
		uc.logger.Warnw("telegram rate limit reached",
			"template_type", req.Type,
			"chat_id", req.ChatID,
			"retry_after", retryAfter,
		)
		return errors.NewTooManyRequestsError("telegram rate limit reached, please retry later", retryAfter)
	}

	uc.logger.Errorw("failed to send message template",
		"template_type", req.Type,
		"chat_id", req.ChatID,
		"error", err,
	)
	return errors.NewBadGatewayError("failed to deliver message to telegram")
}
