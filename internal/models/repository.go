package models

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// Repository is the persistence boundary. Get and Find methods return
// errs.ErrNotFound when nothing matches. Delete methods succeed for ids
// that do not exist.
type Repository interface {
	AddPaymentRequest(ctx context.Context, request *PaymentRequest) error
	ListPaymentRequests(ctx context.Context) ([]*PaymentRequest, error)
	GetPaymentRequest(ctx context.Context, id string) (*PaymentRequest, error)
	// FindPaymentRequestBySeat returns the oldest request with the seat number.
	FindPaymentRequestBySeat(ctx context.Context, seatNumber string) (*PaymentRequest, error)
	// FindPaymentRequestByPhone returns the oldest request with the phone.
	FindPaymentRequestByPhone(ctx context.Context, phone string) (*PaymentRequest, error)
	// OpenPaymentRequest sets paid, result and opened_at in a single update.
	OpenPaymentRequest(ctx context.Context, id string, result datatypes.JSONMap, openedAt time.Time) error
	// AttachResult stores result on a paid request that has none yet.
	// It reports false when the condition did not hold.
	AttachResult(ctx context.Context, id string, result datatypes.JSONMap) (bool, error)
	DeletePaymentRequest(ctx context.Context, id string) error

	AddReservation(ctx context.Context, reservation *Reservation) error
	ListReservations(ctx context.Context) ([]*Reservation, error)
	GetReservation(ctx context.Context, id string) (*Reservation, error)
	DeleteReservation(ctx context.Context, id string) error

	AddChatInquiry(ctx context.Context, inquiry *ChatInquiry) error
	// ListChatInquiries returns inquiries newest first.
	ListChatInquiries(ctx context.Context) ([]*ChatInquiry, error)
	GetChatInquiry(ctx context.Context, id string) (*ChatInquiry, error)
	MarkChatInquiryRead(ctx context.Context, id string) error
	DeleteChatInquiry(ctx context.Context, id string) error

	AddResults(ctx context.Context, results []*Result) error
	ListResults(ctx context.Context) ([]*Result, error)
	// FindResultBySeat returns the first result with the seat number.
	FindResultBySeat(ctx context.Context, seatNumber string) (*Result, error)

	AddAdminMessage(ctx context.Context, message *AdminMessage) error
	ListAdminMessages(ctx context.Context) ([]*AdminMessage, error)

	Close() error
}
