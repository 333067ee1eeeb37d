package messagetemplate

import (
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/locationgenius/dashboard/internal/shared/biztime"
)

const (
	MinNameLength    = 2
	MaxNameLength    = 100
	MinContentLength = 10
	MaxContentLength = 10000
)

// MessageTemplate is a stored message with {placeholder} tokens, looked up by
// its type. Only active templates are visible to readers.
type MessageTemplate struct {
	id           string
	name         string
	templateType TemplateType
	content      string
	variables    []string
	isActive     bool
	createdBy    string
	createdAt    time.Time
	updatedAt    time.Time
	mu           sync.RWMutex
}

// NewMessageTemplate creates an active template. When variables is nil it is
// derived from the placeholders in content.
func NewMessageTemplate(
	name string,
	templateType TemplateType,
	content string,
	variables []string,
	createdBy string,
) (*MessageTemplate, error) {
	if !templateType.IsValid() {
		return nil, fmt.Errorf("invalid template type %q", templateType)
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &MessageTemplate{
		id:           uuid.NewString(),
		name:         name,
		templateType: templateType,
		content:      content,
		variables:    normalizeVariables(content, variables),
		isActive:     true,
		createdBy:    createdBy,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructMessageTemplate rebuilds a template from persistence without
// applying creation rules.
func ReconstructMessageTemplate(
	id string,
	name string,
	templateType TemplateType,
	content string,
	variables []string,
	isActive bool,
	createdBy string,
	createdAt, updatedAt time.Time,
) (*MessageTemplate, error) {
	if id == "" {
		return nil, fmt.Errorf("template ID cannot be empty")
	}
	if templateType == "" {
		return nil, fmt.Errorf("template type is required")
	}

	if variables == nil {
		variables = []string{}
	}

	return &MessageTemplate{
		id:           id,
		name:         name,
		templateType: templateType,
		content:      content,
		variables:    variables,
		isActive:     isActive,
		createdBy:    createdBy,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (t *MessageTemplate) ID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.id
}

func (t *MessageTemplate) Name() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.name
}

func (t *MessageTemplate) Type() TemplateType {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.templateType
}

func (t *MessageTemplate) Content() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.content
}

func (t *MessageTemplate) Variables() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	vars := make([]string, len(t.variables))
	copy(vars, t.variables)
	return vars
}

func (t *MessageTemplate) IsActive() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.isActive
}

func (t *MessageTemplate) CreatedBy() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.createdBy
}

func (t *MessageTemplate) CreatedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.createdAt
}

func (t *MessageTemplate) UpdatedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.updatedAt
}

// Update replaces name, content and variables. A nil variables slice is
// re-derived from the new content.
func (t *MessageTemplate) Update(name, content string, variables []string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateContent(content); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.name = name
	t.content = content
	t.variables = normalizeVariables(content, variables)
	t.updatedAt = biztime.NowUTC()
	return nil
}

// UpdateContent replaces only the content; variables follow the new content.
func (t *MessageTemplate) UpdateContent(content string) error {
	if err := validateContent(content); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.content = content
	t.variables = ExtractVariables(content)
	t.updatedAt = biztime.NowUTC()
	return nil
}

func (t *MessageTemplate) Activate() {
	t.setActive(true)
}

func (t *MessageTemplate) Deactivate() {
	t.setActive(false)
}

func (t *MessageTemplate) setActive(active bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.isActive == active {
		return
	}
	t.isActive = active
	t.updatedAt = biztime.NowUTC()
}

// Render substitutes vars into the template content.
func (t *MessageTemplate) Render(vars map[string]any) string {
	return Render(t.Content(), vars)
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinNameLength {
		return fmt.Errorf("name must be at least %d characters", MinNameLength)
	}
	if n > MaxNameLength {
		return fmt.Errorf("name exceeds maximum length of %d characters", MaxNameLength)
	}
	return nil
}

func validateContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n < MinContentLength {
		return fmt.Errorf("content must be at least %d characters", MinContentLength)
	}
	if n > MaxContentLength {
		return fmt.Errorf("content exceeds maximum length of %d characters", MaxContentLength)
	}
	return nil
}

func normalizeVariables(content string, variables []string) []string {
	if variables == nil {
		return ExtractVariables(content)
	}
	vars := make([]string, len(variables))
	copy(vars, variables)
	return vars
}
