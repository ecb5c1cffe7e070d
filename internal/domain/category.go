package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category представляет тематическую категорию каталога.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relationships
	Links []Link `gorm:"foreignKey:CategoryID" json:"links,omitempty"`
}

// TableName возвращает название таблицы для GORM
func (Category) TableName() string {
	return "categories"
}
