package resultdesk

import (
	"context"

	"github.com/gizaresult/resultdesk/internal/models"
)

func (s *SubmissionService) ListPaymentRequests(ctx context.Context) ([]*models.PaymentRequest, error) {
	return s.repo.ListPaymentRequests(ctx)
}

func (s *SubmissionService) GetPaymentRequest(ctx context.Context, id string) (*models.PaymentRequest, error) {
	return s.repo.GetPaymentRequest(ctx, id)
}

func (s *SubmissionService) DeletePaymentRequest(ctx context.Context, id string) error {
	if err := s.repo.DeletePaymentRequest(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Payment request deleted", "id", id)
	return nil
}

func (s *SubmissionService) ListReservations(ctx context.Context) ([]*models.Reservation, error) {
	return s.repo.ListReservations(ctx)
}

func (s *SubmissionService) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	return s.repo.GetReservation(ctx, id)
}

func (s *SubmissionService) DeleteReservation(ctx context.Context, id string) error {
	if err := s.repo.DeleteReservation(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Reservation deleted", "id", id)
	return nil
}

func (s *SubmissionService) ListChatInquiries(ctx context.Context) ([]*models.ChatInquiry, error) {
	return s.repo.ListChatInquiries(ctx)
}

func (s *SubmissionService) GetChatInquiry(ctx context.Context, id string) (*models.ChatInquiry, error) {
	return s.repo.GetChatInquiry(ctx, id)
}

// MarkChatInquiryRead is idempotent for existing inquiries and returns
// errs.ErrNotFound for unknown ids.
func (s *SubmissionService) MarkChatInquiryRead(ctx context.Context, id string) error {
	return s.repo.MarkChatInquiryRead(ctx, id)
}

func (s *SubmissionService) DeleteChatInquiry(ctx context.Context, id string) error {
	if err := s.repo.DeleteChatInquiry(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Chat inquiry deleted", "id", id)
	return nil
}

func (s *SubmissionService) ListResults(ctx context.Context) ([]*models.Result, error) {
	return s.repo.ListResults(ctx)
}

func (s *SubmissionService) ListAdminMessages(ctx context.Context) ([]*models.AdminMessage, error) {
	return s.repo.ListAdminMessages(ctx)
}
