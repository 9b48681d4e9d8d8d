package http_api

import (
	"context"

	"gorm.io/datatypes"

	"github.com/gizaresult/resultdesk/internal/models"
)

// MockSubmissions lets each test supply only the behaviour it exercises.
type MockSubmissions struct {
	SubmitPaymentFunc       func(ctx context.Context, in models.PaymentInput, file *models.Attachment) (*models.PaymentRequest, error)
	SubmitReservationFunc   func(ctx context.Context, in models.ReservationInput, file *models.Attachment, method models.ReservationMethod) (*models.Reservation, error)
	SubmitChatInquiryFunc   func(ctx context.Context, message string, submitter models.Submitter) (*models.ChatInquiry, error)
	OpenResultFunc          func(ctx context.Context, seatNumber string) error
	SendAdminReplyFunc      func(ctx context.Context, email, message string) error
	ListPaymentRequestsFunc func(ctx context.Context) ([]*models.PaymentRequest, error)
	GetPaymentRequestFunc   func(ctx context.Context, id string) (*models.PaymentRequest, error)
	DeleteFunc              func(ctx context.Context, id string) error
	ListReservationsFunc    func(ctx context.Context) ([]*models.Reservation, error)
	ListChatInquiriesFunc   func(ctx context.Context) ([]*models.ChatInquiry, error)
	GetChatInquiryFunc      func(ctx context.Context, id string) (*models.ChatInquiry, error)
	MarkChatInquiryReadFunc func(ctx context.Context, id string) error
	ListResultsFunc         func(ctx context.Context) ([]*models.Result, error)

	Calls int
}

func (m *MockSubmissions) SubmitPayment(ctx context.Context, in models.PaymentInput, file *models.Attachment) (*models.PaymentRequest, error) {
	m.Calls++
	return m.SubmitPaymentFunc(ctx, in, file)
}

func (m *MockSubmissions) SubmitReservation(ctx context.Context, in models.ReservationInput, file *models.Attachment, method models.ReservationMethod) (*models.Reservation, error) {
	m.Calls++
	return m.SubmitReservationFunc(ctx, in, file, method)
}

func (m *MockSubmissions) SubmitChatInquiry(ctx context.Context, message string, submitter models.Submitter) (*models.ChatInquiry, error) {
	m.Calls++
	return m.SubmitChatInquiryFunc(ctx, message, submitter)
}

func (m *MockSubmissions) OpenResult(ctx context.Context, seatNumber string) error {
	m.Calls++
	return m.OpenResultFunc(ctx, seatNumber)
}

func (m *MockSubmissions) SendAdminReply(ctx context.Context, email, message string) error {
	m.Calls++
	return m.SendAdminReplyFunc(ctx, email, message)
}

func (m *MockSubmissions) ListPaymentRequests(ctx context.Context) ([]*models.PaymentRequest, error) {
	m.Calls++
	if m.ListPaymentRequestsFunc == nil {
		return nil, nil
	}
	return m.ListPaymentRequestsFunc(ctx)
}

func (m *MockSubmissions) GetPaymentRequest(ctx context.Context, id string) (*models.PaymentRequest, error) {
	m.Calls++
	return m.GetPaymentRequestFunc(ctx, id)
}

func (m *MockSubmissions) delete(ctx context.Context, id string) error {
	m.Calls++
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

func (m *MockSubmissions) DeletePaymentRequest(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

func (m *MockSubmissions) ListReservations(ctx context.Context) ([]*models.Reservation, error) {
	m.Calls++
	if m.ListReservationsFunc == nil {
		return nil, nil
	}
	return m.ListReservationsFunc(ctx)
}

func (m *MockSubmissions) GetReservation(context.Context, string) (*models.Reservation, error) {
	m.Calls++
	return &models.Reservation{}, nil
}

func (m *MockSubmissions) DeleteReservation(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

func (m *MockSubmissions) ListChatInquiries(ctx context.Context) ([]*models.ChatInquiry, error) {
	m.Calls++
	return m.ListChatInquiriesFunc(ctx)
}

func (m *MockSubmissions) GetChatInquiry(ctx context.Context, id string) (*models.ChatInquiry, error) {
	m.Calls++
	return m.GetChatInquiryFunc(ctx, id)
}

func (m *MockSubmissions) MarkChatInquiryRead(ctx context.Context, id string) error {
	m.Calls++
	return m.MarkChatInquiryReadFunc(ctx, id)
}

func (m *MockSubmissions) DeleteChatInquiry(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

func (m *MockSubmissions) ListResults(ctx context.Context) ([]*models.Result, error) {
	m.Calls++
	return m.ListResultsFunc(ctx)
}

func (m *MockSubmissions) ListAdminMessages(context.Context) ([]*models.AdminMessage, error) {
	m.Calls++
	return nil, nil
}

// MockLookup returns canned lookup outcomes.
type MockLookup struct {
	LookupFunc func(ctx context.Context, phone, seatNumber string) (datatypes.JSONMap, error)
}

func (m *MockLookup) Lookup(ctx context.Context, phone, seatNumber string) (datatypes.JSONMap, error) {
	return m.LookupFunc(ctx, phone, seatNumber)
}
