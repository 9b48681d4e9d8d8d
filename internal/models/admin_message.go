package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminMessage records a reply email the admin has sent.
type AdminMessage struct {
	ID      string    `json:"id" gorm:"column:id;primaryKey;size:36"`
	Email   string    `json:"email" gorm:"column:email"`
	Message string    `json:"message" gorm:"column:message;type:text"`
	SentAt  time.Time `json:"sentAt" gorm:"column:sent_at;index"`
}

func (AdminMessage) TableName() string {
	return "admin_messages"
}

func (m *AdminMessage) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
