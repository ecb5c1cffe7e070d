package domain

import (
	"time"

	"github.com/google/uuid"
)

// Статусы жалобы. Начальный статус всегда pending; из pending жалоба
// переходит в reviewed или rejected и обратно не возвращается.
const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
	ReportStatusRejected = "rejected"
)

// Report представляет жалобу пользователя на ссылку.
type Report struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	LinkID    uuid.UUID `gorm:"column:link_id;type:uuid;not null;index" json:"link_id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Reason    string    `gorm:"column:reason;size:500;not null" json:"reason"`
	Status    string    `gorm:"column:status;size:50;not null;default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`

	// Relationships
	Link *Link `gorm:"foreignKey:LinkID" json:"link,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName возвращает название таблицы для GORM
func (Report) TableName() string {
	return "reports"
}

// IsPending сообщает, ожидает ли жалоба действия администратора.
func (r *Report) IsPending() bool {
	return r.Status == ReportStatusPending
}

// ValidReportStatus проверяет, является ли строка известным статусом.
func ValidReportStatus(status string) bool {
	switch status {
	case ReportStatusPending, ReportStatusReviewed, ReportStatusRejected:
		return true
	}
	return false
}
