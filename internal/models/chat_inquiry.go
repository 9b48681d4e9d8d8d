package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InquiryStatus string

const (
	InquiryNew  InquiryStatus = "new"
	InquiryRead InquiryStatus = "read"
)

// UnknownSubmitter is shown for submitter fields that were left empty.
const UnknownSubmitter = "unknown"

// Submitter is the optional contact info attached to a chat inquiry.
type Submitter struct {
	Name  string `json:"name" gorm:"column:name"`
	Phone string `json:"phone" gorm:"column:phone"`
	Email string `json:"email" gorm:"column:email"`
}

func orUnknown(s string) string {
	if s == "" {
		return UnknownSubmitter
	}
	return s
}

func (s Submitter) DisplayName() string  { return orUnknown(s.Name) }
func (s Submitter) DisplayPhone() string { return orUnknown(s.Phone) }
func (s Submitter) DisplayEmail() string { return orUnknown(s.Email) }

// ChatInquiry is a free-text question left through the site chat widget.
type ChatInquiry struct {
	ID        string        `json:"id" gorm:"column:id;primaryKey;size:36"`
	Message   string        `json:"message" gorm:"column:message;type:text"`
	Submitter Submitter     `json:"userData" gorm:"embedded;embeddedPrefix:submitter_"`
	Status    InquiryStatus `json:"status" gorm:"column:status;size:16;index"`
	CreatedAt time.Time     `json:"created_at" gorm:"column:created_at;index"`
}

func (ChatInquiry) TableName() string {
	return "chat_inquiries"
}

func (c *ChatInquiry) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
