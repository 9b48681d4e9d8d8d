package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentRequest is a result-unlock request submitted with a proof of transfer.
// Result is only ever set together with, or after, Paid.
type PaymentRequest struct {
	// ID is the store-assigned identifier.
	ID string `json:"id" gorm:"column:id;primaryKey;size:36"`
	// NationalID is stored exactly as submitted.
	NationalID string `json:"nationalId" gorm:"column:national_id"`
	// SeatNumber links the request to a Result. It may be empty.
	SeatNumber string `json:"seatNumber" gorm:"column:seat_number;index"`
	// Phone holds digits only.
	Phone string `json:"phone" gorm:"column:phone;index"`
	Email string `json:"email" gorm:"column:email"`
	// Screenshot is the attachment reference, empty when none was stored.
	Screenshot string `json:"-" gorm:"column:screenshot"`
	// Paid flips to true when an admin opens the result.
	Paid bool `json:"paid" gorm:"column:paid;not null;default:false;index"`
	// Result is the embedded copy of the matching Result document.
	Result datatypes.JSONMap `json:"result,omitempty" gorm:"column:result"`
	// OpenedAt is stamped by the open-result transition.
	OpenedAt  *time.Time `json:"openedAt,omitempty" gorm:"column:opened_at"`
	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at;index"`
}

func (PaymentRequest) TableName() string {
	return "requests"
}

func (r *PaymentRequest) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// HasResult reports whether a result document has been attached.
func (r *PaymentRequest) HasResult() bool {
	return len(r.Result) > 0
}

// PaymentInput carries the form fields of a payment submission.
type PaymentInput struct {
	NationalID string
	SeatNumber string
	Phone      string
	Email      string
}
