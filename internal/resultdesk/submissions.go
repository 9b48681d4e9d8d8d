// Package resultdesk holds the business core: public submissions, admin
// record management and the result lookup.
package resultdesk

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/gizaresult/resultdesk/internal/errs"
	"github.com/gizaresult/resultdesk/internal/models"
	"github.com/gizaresult/resultdesk/pkg/logger"
	"github.com/gizaresult/resultdesk/pkg/validation"
)

// SubmissionService persists public submissions, notifies the admin and
// serves every admin action on stored records.
type SubmissionService struct {
	logger *logger.Logger

	repo        models.Repository
	attachments models.AttachmentStore
	notificator models.NotificationService
	mailer      models.Mailer

	// ReplySubject is the subject line of admin reply emails.
	ReplySubject string

	now func() time.Time
}

var _ models.Submissions = (*SubmissionService)(nil)

// NewSubmissionService wires the service. mailer may be nil when email is
// not configured, in which case admin replies fail with ErrTransport.
func NewSubmissionService(
	repo models.Repository,
	attachments models.AttachmentStore,
	notificator models.NotificationService,
	mailer models.Mailer,
	replySubject string,
	logger *logger.Logger,
) *SubmissionService {
	return &SubmissionService{
		logger:       logger,
		repo:         repo,
		attachments:  attachments,
		notificator:  notificator,
		mailer:       mailer,
		ReplySubject: replySubject,
		now:          time.Now,
	}
}

func (s *SubmissionService) storeAttachment(ctx context.Context, file *models.Attachment) (string, error) {
	if file == nil || file.Content == nil {
		return "", errs.ErrMissingAttachment
	}
	return s.attachments.Store(ctx, file.Content, file.Filename)
}

// notify runs after the record is stored. The notification outlives a
// client that disconnects mid-request.
func (s *SubmissionService) notify(ctx context.Context, n *models.Notification) {
	s.notificator.SendNotification(context.WithoutCancel(ctx), n)
}

func (s *SubmissionService) SubmitPayment(ctx context.Context, in models.PaymentInput, file *models.Attachment) (*models.PaymentRequest, error) {
	ref, err := s.storeAttachment(ctx, file)
	if err != nil {
		return nil, err
	}

	request := &models.PaymentRequest{
		NationalID: in.NationalID,
		SeatNumber: in.SeatNumber,
		Phone:      validation.NormalizePhone(in.Phone),
		Email:      in.Email,
		Screenshot: ref,
		Paid:       false,
		CreatedAt:  s.now(),
	}
	if err := s.repo.AddPaymentRequest(ctx, request); err != nil {
		return nil, err
	}
	s.logger.Info("Payment request submitted", "id", request.ID, "seat_number", request.SeatNumber)

	s.notify(ctx, &models.Notification{Kind: models.EventPaymentSubmitted, Payment: request})
	return request, nil
}

func (s *SubmissionService) SubmitReservation(ctx context.Context, in models.ReservationInput, file *models.Attachment, method models.ReservationMethod) (*models.Reservation, error) {
	if validation.AnyBlank(in.NationalID, in.Phone, in.Email, in.SenderPhone) {
		return nil, errs.ErrIncompleteSubmission
	}
	if method != models.ReservationPhone {
		method = models.ReservationOnline
	}
	ref, err := s.storeAttachment(ctx, file)
	if err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		NationalID:  in.NationalID,
		Phone:       validation.NormalizePhone(in.Phone),
		SenderPhone: validation.NormalizePhone(in.SenderPhone),
		Email:       in.Email,
		Screenshot:  ref,
		Method:      method,
		ReservedAt:  s.now(),
	}
	if err := s.repo.AddReservation(ctx, reservation); err != nil {
		return nil, err
	}
	s.logger.Info("Reservation submitted", "id", reservation.ID, "method", method)

	s.notify(ctx, &models.Notification{Kind: models.EventReservationSubmitted, Reservation: reservation})
	return reservation, nil
}

func (s *SubmissionService) SubmitChatInquiry(ctx context.Context, message string, submitter models.Submitter) (*models.ChatInquiry, error) {
	if validation.IsBlank(message) {
		return nil, errs.ErrIncompleteSubmission
	}

	inquiry := &models.ChatInquiry{
		Message:   message,
		Submitter: submitter,
		Status:    models.InquiryNew,
		CreatedAt: s.now(),
	}
	if err := s.repo.AddChatInquiry(ctx, inquiry); err != nil {
		return nil, err
	}
	s.logger.Info("Chat inquiry submitted", "id", inquiry.ID)

	s.notify(ctx, &models.Notification{Kind: models.EventChatInquirySubmitted, Inquiry: inquiry})
	return inquiry, nil
}

// OpenResult marks the first request for the seat as paid and embeds the
// first matching result in the same update.
func (s *SubmissionService) OpenResult(ctx context.Context, seatNumber string) error {
	seatNumber = strings.TrimSpace(seatNumber)
	if seatNumber == "" {
		return errs.ErrIncompleteSubmission
	}

	request, err := s.repo.FindPaymentRequestBySeat(ctx, seatNumber)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrRequestNotFound
		}
		return err
	}
	result, err := s.repo.FindResultBySeat(ctx, seatNumber)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrResultNotFound
		}
		return err
	}

	if err := s.repo.OpenPaymentRequest(ctx, request.ID, result.Document(), s.now()); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// deleted between the lookup and the update
			return errs.ErrRequestNotFound
		}
		return err
	}
	s.logger.Info("Result opened", "request_id", request.ID, "seat_number", seatNumber, "reopened", request.Paid)
	return nil
}

// SendAdminReply emails a free-text reply and records it once delivered.
func (s *SubmissionService) SendAdminReply(ctx context.Context, email, message string) error {
	if validation.AnyBlank(email, message) {
		return errs.ErrIncompleteSubmission
	}
	if s.mailer == nil {
		return fmt.Errorf("%w: email is not configured", errs.ErrTransport)
	}

	body := "<p>" + html.EscapeString(message) + "</p>"
	if err := s.mailer.SendMail(ctx, email, s.ReplySubject, message, body); err != nil {
		s.logger.Error("Failed to send admin reply", "email", email, "error", err)
		return fmt.Errorf("%w: %v", errs.ErrTransport, err)
	}

	record := &models.AdminMessage{Email: email, Message: message, SentAt: s.now()}
	if err := s.repo.AddAdminMessage(ctx, record); err != nil {
		// the mail is already out, keep the reply successful
		s.logger.Error("Failed to record admin reply", "email", email, "error", err)
	}
	return nil
}
