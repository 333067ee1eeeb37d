// Package db provides gorm transaction management and shared query scopes.
package db

import (
	"gorm.io/gorm"
)

// ActiveOnly filters rows whose is_active flag is set.
//
//	db.Model(&models.MessageTemplateModel{}).Scopes(db.ActiveOnly()).Find(&rows)
func ActiveOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}

// NewestFirst orders by creation time, most recent first. Rows created in the
// same instant fall back to the latest update, then to id for a stable order.
func NewestFirst() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order("updated_at DESC").Order("id DESC")
	}
}

// Paginate applies limit and offset when limit is positive.
func Paginate(limit, offset int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		if offset < 0 {
			offset = 0
		}
		return db.Limit(limit).Offset(offset)
	}
}
