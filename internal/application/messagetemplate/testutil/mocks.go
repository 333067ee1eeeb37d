// Package testutil provides in-memory doubles for testing the message
// template application layer.
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/locationgenius/dashboard/internal/domain/messagetemplate"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

// MockTemplateRepository is an in-memory messagetemplate.Repository.
type MockTemplateRepository struct {
	mu        sync.RWMutex
	templates map[string]*messagetemplate.MessageTemplate

	// Error injection for testing
	getError    error
	listError   error
	createError error
	updateError error

	updateCalls int
}

func NewMockTemplateRepository() *MockTemplateRepository {
	return &MockTemplateRepository{
		templates: make(map[string]*messagetemplate.MessageTemplate),
	}
}

func (m *MockTemplateRepository) ListActive(ctx context.Context) ([]*messagetemplate.MessageTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, m.listError
	}

	var result []*messagetemplate.MessageTemplate
	for _, t := range m.sorted() {
		if t.IsActive() {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *MockTemplateRepository) GetActiveByType(ctx context.Context, templateType messagetemplate.TemplateType) (*messagetemplate.MessageTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	for _, t := range m.sorted() {
		if t.IsActive() && t.Type() == templateType {
			return t, nil
		}
	}
	return nil, nil
}

func (m *MockTemplateRepository) GetByID(ctx context.Context, id string) (*messagetemplate.MessageTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}
	return m.templates[id], nil
}

func (m *MockTemplateRepository) Create(ctx context.Context, template *messagetemplate.MessageTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createError != nil {
		return m.createError
	}
	m.templates[template.ID()] = template
	return nil
}

func (m *MockTemplateRepository) Update(ctx context.Context, template *messagetemplate.MessageTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updateCalls++
	if m.updateError != nil {
		return m.updateError
	}
	m.templates[template.ID()] = template
	return nil
}

func (m *MockTemplateRepository) ListAll(ctx context.Context, limit, offset int) ([]*messagetemplate.MessageTemplate, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, 0, m.listError
	}

	all := m.sorted()
	total := int64(len(all))
	if offset >= len(all) {
		return []*messagetemplate.MessageTemplate{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// sorted returns templates newest first; callers hold the lock.
func (m *MockTemplateRepository) sorted() []*messagetemplate.MessageTemplate {
	all := make([]*messagetemplate.MessageTemplate, 0, len(m.templates))
	for _, t := range m.templates {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt().After(all[j].CreatedAt())
	})
	return all
}

// AddTemplate seeds the repository without going through Create.
func (m *MockTemplateRepository) AddTemplate(template *messagetemplate.MessageTemplate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[template.ID()] = template
}

func (m *MockTemplateRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getError = err
}

func (m *MockTemplateRepository) SetListError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listError = err
}

func (m *MockTemplateRepository) SetCreateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createError = err
}

func (m *MockTemplateRepository) SetUpdateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateError = err
}

func (m *MockTemplateRepository) UpdateCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.updateCalls
}

// MockSender records messages instead of calling Telegram.
type MockSender struct {
	mu    sync.Mutex
	Sent  []SentMessage
	Error error
}

type SentMessage struct {
	ChatID int64
	Text   string
}

func (s *MockSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Error != nil {
		return s.Error
	}
	s.Sent = append(s.Sent, SentMessage{ChatID: chatID, Text: text})
	return nil
}

// MockMarkdown wraps the message in a paragraph.
type MockMarkdown struct {
	Error error
}

func (m *MockMarkdown) ToHTMLSanitized(markdown string) (string, error) {
	if m.Error != nil {
		return "", m.Error
	}
	return "<p>" + markdown + "</p>\n", nil
}

// MockLogger records log calls.
type MockLogger struct {
	mu      sync.RWMutex
	entries []LogEntry
}

// LogEntry records a log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]any
}

func NewMockLogger() *MockLogger {
	return &MockLogger{entries: make([]LogEntry, 0)}
}

func (m *MockLogger) Debug(msg string, args ...any) { m.log("DEBUG", msg, args...) }
func (m *MockLogger) Info(msg string, args ...any) { m.log("INFO", msg, args...) }
func (m *MockLogger) Warn(msg string, args ...any) { m.log("WARN", msg, args...) }
func (m *MockLogger) Error(msg string, args ...any) { m.log("ERROR", msg, args...) }

func (m *MockLogger) With(args ...any) logger.Interface { return m }
func (m *MockLogger) Named(name string) logger.Interface { return m }

func (m *MockLogger) Debugw(msg string, keysAndValues ...any) { m.log("DEBUG", msg, keysAndValues...) }
func (m *MockLogger) Infow(msg string, keysAndValues ...any) { m.log("INFO", msg, keysAndValues...) }
func (m *MockLogger) Warnw(msg string, keysAndValues ...any) { m.log("WARN", msg, keysAndValues...) }
func (m *MockLogger) Errorw(msg string, keysAndValues ...any) { m.log("ERROR", msg, keysAndValues...) }

func (m *MockLogger) log(level, msg string, fields ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := LogEntry{
		Level:   level,
		Message: msg,
		Fields:  make(map[string]any),
	}
	for i := 0; i < len(fields)-1; i += 2 {
		if key, ok := fields[i].(string); ok {
			entry.Fields[key] = fields[i+1]
		}
	}
	m.entries = append(m.entries, entry)
}

// EntriesAt returns the entries logged at level.
func (m *MockLogger) EntriesAt(level string) []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []LogEntry
	for _, e := range m.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}
