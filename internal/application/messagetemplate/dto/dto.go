package dto

import "time"

type CreateTemplateRequest struct {
	Name      string   `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Type      string   `json:"type" binding:"required" validate:"required,slug"`
	Content   string   `json:"content" binding:"required" validate:"required,min=10,max=10000"`
	Variables []string `json:"variables"`
	CreatedBy string   `json:"-"` // set by handler from the authenticated user
}

type UpdateTemplateRequest struct {
	Name      string   `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Content   string   `json:"content" binding:"required" validate:"required,min=10,max=10000"`
	Variables []string `json:"variables"`
}

type UpdateTemplateContentRequest struct {
	Content string `json:"content" binding:"required" validate:"required,min=10,max=10000"`
}

type SetTemplateStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required" validate:"required"`
}

type RenderTemplateRequest struct {
	Type        string         `json:"type" binding:"required" validate:"required,slug"`
	Variables   map[string]any `json:"variables"`
	PreviewHTML bool           `json:"preview_html"`
}

type RenderContentRequest struct {
	Content     string         `json:"content" binding:"required" validate:"required,max=10000"`
	Variables   map[string]any `json:"variables"`
	PreviewHTML bool           `json:"preview_html"`
}

type SendTemplateRequest struct {
	Type      string         `json:"type" binding:"required" validate:"required,slug"`
	ChatID    int64          `json:"chat_id" binding:"required" validate:"required,ne=0"`
	Variables map[string]any `json:"variables"`
}

type ListTemplatesRequest struct {
	Page     int
	PageSize int
}

type TemplateResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Variables []string  `json:"variables"`
	IsActive  bool      `json:"is_active"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RenderResponse struct {
	TemplateID       string   `json:"template_id,omitempty"`
	Type             string   `json:"type,omitempty"`
	Message          string   `json:"message"`
	VariablesUsed    []string `json:"variables_used"`
	MissingVariables []string `json:"missing_variables"`
	HTML             string   `json:"html,omitempty"`
}

type SendTemplateResponse struct {
	TemplateID       string   `json:"template_id"`
	ChatID           int64    `json:"chat_id"`
	Message          string   `json:"message"`
	MissingVariables []string `json:"missing_variables"`
}

type ListTemplatesResponse struct {
	Templates []*TemplateResponse `json:"templates"`
	Total     int64               `json:"total"`
	Page      int                 `json:"page"`
	PageSize  int                 `json:"page_size"`
}
