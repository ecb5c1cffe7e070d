package domain

import "github.com/google/uuid"

// Названия платформ: фиксированный набор, заполняется при seed.
const (
	PlatformWhatsApp = "whatsapp"
	PlatformTelegram = "telegram"
	PlatformFacebook = "facebook"
)

// Platform представляет мессенджер, к которому относится ссылка.
type Platform struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Name string    `gorm:"column:name;not null;uniqueIndex" json:"name"`

	// Relationships
	Links []Link `gorm:"foreignKey:PlatformID" json:"links,omitempty"`
}

// TableName возвращает название таблицы для GORM
func (Platform) TableName() string {
	return "platforms"
}
