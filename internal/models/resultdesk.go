package models

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// AdminToken is a signed admin session token.
type AdminToken struct {
	Token     string
	ExpiresAt time.Time
}

// AdminClaims is what a verified token says about its bearer.
type AdminClaims struct {
	Username  string
	ExpiresAt time.Time
}

// CredentialGate authenticates the single admin account.
type CredentialGate interface {
	Login(username, password string) (*AdminToken, error)
	Verify(token string) (*AdminClaims, error)
}

// Submissions covers the public submission flows and every admin action
// on stored records.
type Submissions interface {
	SubmitPayment(ctx context.Context, in PaymentInput, file *Attachment) (*PaymentRequest, error)
	SubmitReservation(ctx context.Context, in ReservationInput, file *Attachment, method ReservationMethod) (*Reservation, error)
	SubmitChatInquiry(ctx context.Context, message string, submitter Submitter) (*ChatInquiry, error)

	OpenResult(ctx context.Context, seatNumber string) error
	SendAdminReply(ctx context.Context, email, message string) error

	ListPaymentRequests(ctx context.Context) ([]*PaymentRequest, error)
	GetPaymentRequest(ctx context.Context, id string) (*PaymentRequest, error)
	DeletePaymentRequest(ctx context.Context, id string) error

	ListReservations(ctx context.Context) ([]*Reservation, error)
	GetReservation(ctx context.Context, id string) (*Reservation, error)
	DeleteReservation(ctx context.Context, id string) error

	ListChatInquiries(ctx context.Context) ([]*ChatInquiry, error)
	GetChatInquiry(ctx context.Context, id string) (*ChatInquiry, error)
	MarkChatInquiryRead(ctx context.Context, id string) error
	DeleteChatInquiry(ctx context.Context, id string) error

	ListResults(ctx context.Context) ([]*Result, error)
	ListAdminMessages(ctx context.Context) ([]*AdminMessage, error)
}

// ResultLookup resolves results for end users.
type ResultLookup interface {
	Lookup(ctx context.Context, phone, seatNumber string) (datatypes.JSONMap, error)
}
