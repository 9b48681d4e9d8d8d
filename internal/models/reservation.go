package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationMethod tells how a reservation reached us. It only changes
// the wording of the admin notification.
type ReservationMethod string

const (
	ReservationOnline ReservationMethod = "online"
	ReservationPhone  ReservationMethod = "phone"
)

// Reservation is immutable once created; admins may only delete it.
type Reservation struct {
	ID          string            `json:"id" gorm:"column:id;primaryKey;size:36"`
	NationalID  string            `json:"nationalId" gorm:"column:national_id"`
	Phone       string            `json:"phone" gorm:"column:phone"`
	SenderPhone string            `json:"senderPhone" gorm:"column:sender_phone"`
	Email       string            `json:"email" gorm:"column:email"`
	Screenshot  string            `json:"-" gorm:"column:screenshot"`
	Method      ReservationMethod `json:"method" gorm:"column:method;size:16"`
	ReservedAt  time.Time         `json:"reserved_at" gorm:"column:reserved_at;index"`
}

func (Reservation) TableName() string {
	return "reservations"
}

func (r *Reservation) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ReservationInput carries the form fields of a reservation.
type ReservationInput struct {
	NationalID  string
	Phone       string
	Email       string
	SenderPhone string
}
