package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminRole представляет членство пользователя в наборе администраторов.
// ID совпадает с ID пользователя: таблица ведет себя как множество, а не роль.
type AdminRole struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:ID;references:ID" json:"user,omitempty"`
}

// TableName возвращает название таблицы для GORM
func (AdminRole) TableName() string {
	return "admin_roles"
}
