package models

import "context"

type EventKind string

const (
	EventPaymentSubmitted     EventKind = "payment_submitted"
	EventReservationSubmitted EventKind = "reservation_submitted"
	EventChatInquirySubmitted EventKind = "chat_inquiry_submitted"
)

// Notification is a domain event addressed to the administrator. Exactly
// one of the record fields is set, matching Kind.
type Notification struct {
	Kind        EventKind
	Payment     *PaymentRequest
	Reservation *Reservation
	Inquiry     *ChatInquiry
}

// NotificationService delivers admin notifications. Implementations never
// report failures back to the caller.
type NotificationService interface {
	SendNotification(ctx context.Context, notification *Notification)
}

// Mailer sends a single email. HTML may be empty.
type Mailer interface {
	SendMail(ctx context.Context, to, subject, text, html string) error
}
