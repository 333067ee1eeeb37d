package dto

import "github.com/locationgenius/dashboard/internal/domain/messagetemplate"

func ToTemplateResponse(t *messagetemplate.MessageTemplate) *TemplateResponse {
	if t == nil {
		return nil
	}
	return &TemplateResponse{
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

func ToTemplateResponses(templates []*messagetemplate.MessageTemplate) []*TemplateResponse {
	responses := make([]*TemplateResponse, 0, len(templates))
	for _, t := range templates {
		responses = append(responses, ToTemplateResponse(t))
	}
	return responses
}
