package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Result is a grading record keyed by seat number. Seat numbers are not
// unique; lookups take the first record found.
type Result struct {
	ID         string            `json:"id" gorm:"column:id;primaryKey;size:36"`
	SeatNumber string            `json:"seatNumber" gorm:"column:seat_number;index"`
	Data       datatypes.JSONMap `json:"data" gorm:"column:data"`
	CreatedAt  time.Time         `json:"created_at" gorm:"column:created_at;index"`
}

func (Result) TableName() string {
	return "results"
}

func (r *Result) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Document returns the payload that gets copied onto a PaymentRequest:
// the result data plus its seat number.
func (r *Result) Document() datatypes.JSONMap {
	doc := make(datatypes.JSONMap, len(r.Data)+1)
	for k, v := range r.Data {
		doc[k] = v
	}
	doc["seatNumber"] = r.SeatNumber
	return doc
}
