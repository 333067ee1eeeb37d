package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/locationgenius/dashboard/internal/domain/messagetemplate"
	"github.com/locationgenius/dashboard/internal/infrastructure/persistence/mappers"
	"github.com/locationgenius/dashboard/internal/infrastructure/persistence/models"
	"github.com/locationgenius/dashboard/internal/shared/db"
)

// MessageTemplateRepositoryImpl is the gorm-backed template store. Every
// database failure is returned as *messagetemplate.FetchError.
type MessageTemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.MessageTemplateMapper
}

func NewMessageTemplateRepository(gormDB *gorm.DB) *MessageTemplateRepositoryImpl {
	return &MessageTemplateRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewMessageTemplateMapper(),
	}
}

func (r *MessageTemplateRepositoryImpl) ListActive(ctx context.Context) ([]*messagetemplate.MessageTemplate, error) {
	var rows []*models.MessageTemplateModel

	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ActiveOnly(), db.NewestFirst()).
		Find(&rows).Error
	if err != nil {
		return nil, messagetemplate.NewFetchError("list active", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, messagetemplate.NewFetchError("list active", err)
	}
	return entities, nil
}

func (r *MessageTemplateRepositoryImpl) GetActiveByType(ctx context.Context, templateType messagetemplate.TemplateType) (*messagetemplate.MessageTemplate, error) {
	var row models.MessageTemplateModel

	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ActiveOnly(), db.NewestFirst()).
		Where("template_type = ?", templateType.String()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, messagetemplate.NewFetchError("get active by type", err)
	}

	return r.toEntity(&row, "get active by type")
}

func (r *MessageTemplateRepositoryImpl) GetByID(ctx context.Context, id string) (*messagetemplate.MessageTemplate, error) {
	var row models.MessageTemplateModel

	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, messagetemplate.NewFetchError("get by id", err)
	}

	return r.toEntity(&row, "get by id")
}

func (r *MessageTemplateRepositoryImpl) Create(ctx context.Context, template *messagetemplate.MessageTemplate) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.ToModel(template)).Error; err != nil {
		return messagetemplate.NewFetchError("create", err)
	}
	return nil
}

// Update writes the mutable columns. The row must already exist; callers
// load the template before changing it.
func (r *MessageTemplateRepositoryImpl) Update(ctx context.Context, template *messagetemplate.MessageTemplate) error {
	model := r.mapper.ToModel(template)

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.MessageTemplateModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":          model.Name,
			"template_type": model.TemplateType,
			"content":       model.Content,
			"variables":     model.Variables,
			"is_active":     model.IsActive,
			"updated_at":    model.UpdatedAt,
		}).Error
	if err != nil {
		return messagetemplate.NewFetchError("update", err)
	}
	return nil
}

func (r *MessageTemplateRepositoryImpl) ListAll(ctx context.Context, limit, offset int) ([]*messagetemplate.MessageTemplate, int64, error) {
	var (
		rows  []*models.MessageTemplateModel
		total int64
	)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.MessageTemplateModel{}).Count(&total).Error; err != nil {
		return nil, 0, messagetemplate.NewFetchError("count", err)
	}

	if err := tx.Scopes(db.NewestFirst(), db.Paginate(limit, offset)).Find(&rows).Error; err != nil {
		return nil, 0, messagetemplate.NewFetchError("list all", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, 0, messagetemplate.NewFetchError("list all", err)
	}
	return entities, total, nil
}

func (r *MessageTemplateRepositoryImpl) toEntity(row *models.MessageTemplateModel, op string) (*messagetemplate.MessageTemplate, error) {
	entity, err := r.mapper.ToEntity(row)
	if err != nil {
		return nil, messagetemplate.NewFetchError(op, err)
	}
	return entity, nil
}

var _ messagetemplate.Repository = (*MessageTemplateRepositoryImpl)(nil)
