package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/locationgenius/dashboard/internal/shared/constants"
)

// MessageTemplateModel maps the message_templates table. Several rows may
// share a template_type; readers take the newest active one.
type MessageTemplateModel struct {
	ID           string                      `gorm:"primaryKey;size:36"`
	Name         string                      `gorm:"size:100;not null"`
	TemplateType string                      `gorm:"size:50;not null;index:idx_message_templates_type_active,priority:1"`
	Content      string                      `gorm:"type:text;not null"`
	Variables    datatypes.JSONSlice[string] `gorm:"type:json"`
	IsActive     bool                        `gorm:"not null;index:idx_message_templates_type_active,priority:2"`
	CreatedBy    string                      `gorm:"size:64"`
	CreatedAt    time.Time                   `gorm:"index"`
	UpdatedAt    time.Time
}

func (MessageTemplateModel) TableName() string {
	return constants.TableMessageTemplates
}
