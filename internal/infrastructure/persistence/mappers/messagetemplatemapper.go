package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/locationgenius/dashboard/internal/domain/messagetemplate"
	"github.com/locationgenius/dashboard/internal/infrastructure/persistence/models"
)

type MessageTemplateMapper interface {
	ToEntity(model *models.MessageTemplateModel) (*messagetemplate.MessageTemplate, error)
	ToModel(entity *messagetemplate.MessageTemplate) *models.MessageTemplateModel
	ToEntities(models []*models.MessageTemplateModel) ([]*messagetemplate.MessageTemplate, error)
}

type MessageTemplateMapperImpl struct{}

func NewMessageTemplateMapper() MessageTemplateMapper {
	return &MessageTemplateMapperImpl{}
}

func (m *MessageTemplateMapperImpl) ToEntity(model *models.MessageTemplateModel) (*messagetemplate.MessageTemplate, error) {
	if model == nil {
		return nil, nil
	}

	variables := []string(model.Variables)
	if variables == nil {
		variables = messagetemplate.ExtractVariables(model.Content)
	}

	entity, err := messagetemplate.ReconstructMessageTemplate(
		model.ID,
		model.Name,
		messagetemplate.TemplateType(model.TemplateType),
		model.Content,
		variables,
		model.IsActive,
		model.CreatedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct message template %s: %w", model.ID, err)
	}
	return entity, nil
}

func (m *MessageTemplateMapperImpl) ToModel(entity *messagetemplate.MessageTemplate) *models.MessageTemplateModel {
	if entity == nil {
		return nil
	}

	return &models.MessageTemplateModel{
		ID:           entity.ID(),
		Name:         entity.Name(),
		TemplateType: entity.Type().String(),
		Content:      entity.Content(),
		Variables:    datatypes.NewJSONSlice(entity.Variables()),
		IsActive:     entity.IsActive(),
		CreatedBy:    entity.CreatedBy(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func (m *MessageTemplateMapperImpl) ToEntities(rows []*models.MessageTemplateModel) ([]*messagetemplate.MessageTemplate, error) {
	entities := make([]*messagetemplate.MessageTemplate, 0, len(rows))
	for _, row := range rows {
		entity, err := m.ToEntity(row)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
