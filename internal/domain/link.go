package domain

import (
	"time"

	"github.com/google/uuid"
)

// Link представляет опубликованную ссылку на группу или канал.
type Link struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description;type:text;not null" json:"description"`
	URL         string    `gorm:"column:url;size:500;not null" json:"url"`
	PlatformID  uuid.UUID `gorm:"column:platform_id;type:uuid;not null;index" json:"platform_id"`
	CategoryID  uuid.UUID `gorm:"column:category_id;type:uuid;not null;index" json:"category_id"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`

	// Relationships
	Platform *Platform `gorm:"foreignKey:PlatformID" json:"platform,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName возвращает название таблицы для GORM
func (Link) TableName() string {
	return "links"
}
