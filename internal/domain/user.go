package domain

import (
	"time"

	"github.com/google/uuid"
)

// User представляет пользователя сервиса. Признака is_admin на записи
// нет: членство в admin_roles определяет права.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Email        string     `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"` // скрываем пароль в JSON
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relationships
	Links   []Link   `gorm:"foreignKey:UserID" json:"links,omitempty"`
	Reports []Report `gorm:"foreignKey:UserID" json:"reports,omitempty"`
}

// TableName возвращает название таблицы для GORM
func (User) TableName() string {
	return "users"
}
