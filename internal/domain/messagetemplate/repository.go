package messagetemplate

import "context"

// Store is the read side used to serve templates. A lookup that matches
// nothing returns (nil, nil).
type Store interface {
	// ListActive returns active templates, newest first.
	ListActive(ctx context.Context) ([]*MessageTemplate, error)
	// GetActiveByType returns the most recently created active template of
	// the given type.
	GetActiveByType(ctx context.Context, templateType TemplateType) (*MessageTemplate, error)
}

type Repository interface {
	Store
	GetByID(ctx context.Context, id string) (*MessageTemplate, error)
	Create(ctx context.Context, template *MessageTemplate) error
	Update(ctx context.Context, template *MessageTemplate) error
	// ListAll includes inactive templates and returns the total row count.
	ListAll(ctx context.Context, limit, offset int) ([]*MessageTemplate, int64, error)
}
