package usecases

import (
	"context"

	"github.com/locationgenius/dashboard/internal/domain/messagetemplate"
)

type TemplateRepository = messagetemplate.Repository

// MarkdownRenderer produces the sanitized HTML preview of a rendered message.
type MarkdownRenderer interface {
	ToHTMLSanitized(markdown string) (string, error)
}

// MessageSender delivers a rendered message to a Telegram chat.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}
