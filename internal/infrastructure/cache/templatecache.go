package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/locationgenius/dashboard/internal/domain/messagetemplate"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

const (
	templateActiveListKey = "message_template:active"
	templateByTypePrefix  = "message_template:type:"
	// bumped on every write; entries filled under an older generation are
	// misses, so a read racing a write cannot pin the stale row for a TTL
	templateGenerationKey = "message_template:generation"

	DefaultTemplateTTL = 5 * time.Minute
)

// CachedTemplateStore is a read-through Redis cache in front of a template
// repository. Reads that fail in Redis fall back to the repository; writes
// go to the repository first and then drop the affected keys.
type CachedTemplateStore struct {
	next   messagetemplate.Repository
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewCachedTemplateStore(
	next messagetemplate.Repository,
	client *redis.Client,
	ttl time.Duration,
	logger logger.Interface,
) *CachedTemplateStore {
	if ttl <= 0 {
		ttl = DefaultTemplateTTL
	}
	return &CachedTemplateStore{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// cacheEntry wraps a payload with the generation it was loaded under.
type cacheEntry struct {
	Generation int64           `json:"generation"`
	Payload    json.RawMessage `json:"payload"`
}

// cachedTemplate is the JSON form stored in Redis.
type cachedTemplate struct {
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

func toCached(t *messagetemplate.MessageTemplate) cachedTemplate {
	return cachedTemplate{
		ID:        t.ID(),
		Name:      t.Name(),
		Type:      t.Type().String(),
		Content:   t.Content(),
		Variables: t.Variables(),
		IsActive:  t.IsActive(),
		CreatedBy: t.CreatedBy(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func (c cachedTemplate) toEntity() (*messagetemplate.MessageTemplate, error) {
	return messagetemplate.ReconstructMessageTemplate(
		c.ID, c.Name, messagetemplate.TemplateType(c.Type), c.Content, c.Variables,
		c.IsActive, c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	)
}

func typeKey(templateType messagetemplate.TemplateType) string {
	return templateByTypePrefix + templateType.String()
}

func (s *CachedTemplateStore) ListActive(ctx context.Context) ([]*messagetemplate.MessageTemplate, error) {
	var cached []cachedTemplate
	hit, gen := s.load(ctx, templateActiveListKey, &cached)
	if hit {
		templates := make([]*messagetemplate.MessageTemplate, 0, len(cached))
		for _, c := range cached {
			t, err := c.toEntity()
			if err != nil {
				s.logger.Warnw("discarding malformed cached template list", "error", err)
				templates = nil
				break
			}
			templates = append(templates, t)
		}
		if templates != nil {
			return templates, nil
		}
	}

	templates, err := s.next.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make([]cachedTemplate, 0, len(templates))
	for _, t := range templates {
		snapshot = append(snapshot, toCached(t))
	}
	s.store(ctx, templateActiveListKey, gen, snapshot)

	return templates, nil
}

// GetActiveByType caches hits only; an absent template is looked up again
// on the next call.
func (s *CachedTemplateStore) GetActiveByType(ctx context.Context, templateType messagetemplate.TemplateType) (*messagetemplate.MessageTemplate, error) {
	key := typeKey(templateType)

	var cached cachedTemplate
	hit, gen := s.load(ctx, key, &cached)
	if hit {
		t, err := cached.toEntity()
		if err == nil {
			return t, nil
		}
		s.logger.Warnw("discarding malformed cached template", "key", key, "error", err)
	}

	t, err := s.next.GetActiveByType(ctx, templateType)
	if err != nil || t == nil {
		return t, err
	}

	s.store(ctx, key, gen, toCached(t))
	return t, nil
}

func (s *CachedTemplateStore) GetByID(ctx context.Context, id string) (*messagetemplate.MessageTemplate, error) {
	return s.next.GetByID(ctx, id)
}

func (s *CachedTemplateStore) ListAll(ctx context.Context, limit, offset int) ([]*messagetemplate.MessageTemplate, int64, error) {
	return s.next.ListAll(ctx, limit, offset)
}

func (s *CachedTemplateStore) Create(ctx context.Context, template *messagetemplate.MessageTemplate) error {
	if err := s.next.Create(ctx, template); err != nil {
		return err
	}
	s.invalidate(ctx, template.Type())
	return nil
}

func (s *CachedTemplateStore) Update(ctx context.Context, template *messagetemplate.MessageTemplate) error {
	if err := s.next.Update(ctx, template); err != nil {
		return err
	}
	s.invalidate(ctx, template.Type())
	return nil
}

// load reports whether key was found under the current generation and
// decoded into dst. It also returns that generation for a following store,
// or -1 when Redis could not be read.
func (s *CachedTemplateStore) load(ctx context.Context, key string, dst any) (bool, int64) {
	values, err := s.client.MGet(ctx, key, templateGenerationKey).Result()
	if err != nil {
		s.logger.Warnw("template cache read failed, using database", "key", key, "error", err)
		return false, -1
	}

	var gen int64
	if raw, ok := values[1].(string); ok {
		if gen, err = strconv.ParseInt(raw, 10, 64); err != nil {
			s.logger.Warnw("template cache generation is not a number", "value", raw, "error", err)
			return false, -1
		}
	}

	raw, ok := values[0].(string)
	if !ok {
		return false, gen
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		s.logger.Warnw("template cache entry is not valid json", "key", key, "error", err)
		return false, gen
	}
	if entry.Generation != gen {
		return false, gen
	}
	if err := json.Unmarshal(entry.Payload, dst); err != nil {
		s.logger.Warnw("template cache entry is not valid json", "key", key, "error", err)
		return false, gen
	}
	return true, gen
}

func (s *CachedTemplateStore) store(ctx context.Context, key string, gen int64, value any) {
	if gen < 0 {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Warnw("failed to encode template cache entry", "key", key, "error", err)
		return
	}
	data, err := json.Marshal(cacheEntry{Generation: gen, Payload: payload})
	if err != nil {
		s.logger.Warnw("failed to encode template cache entry", "key", key, "error", err)
		return
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warnw("template cache write failed", "key", key, "error", err)
	}
}

func (s *CachedTemplateStore) invalidate(ctx context.Context, templateType messagetemplate.TemplateType) {
	if err := s.client.Incr(ctx, templateGenerationKey).Err(); err != nil {
		s.logger.Errorw("template cache generation bump failed",
			"template_type", templateType,
			"error", err,
		)
	}
	if err := s.client.Del(ctx, templateActiveListKey, typeKey(templateType)).Err(); err != nil {
		s.logger.Errorw("template cache invalidation failed, entries expire with ttl",
			"template_type", templateType,
			"ttl", s.ttl,
			"error", err,
		)
	}
}

var _ messagetemplate.Repository = (*CachedTemplateStore)(nil)
