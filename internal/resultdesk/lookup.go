package resultdesk

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"

	"github.com/gizaresult/resultdesk/internal/errs"
	"github.com/gizaresult/resultdesk/internal/models"
	"github.com/gizaresult/resultdesk/pkg/logger"
	"github.com/gizaresult/resultdesk/pkg/validation"
)

// LookupService answers end-user result checks. A result found in the
// results table is copied onto the paid request on first read, so later
// reads never touch the results table.
type LookupService struct {
	logger *logger.Logger
	repo   models.Repository
}

var _ models.ResultLookup = (*LookupService)(nil)

func NewLookupService(repo models.Repository, logger *logger.Logger) *LookupService {
	return &LookupService{repo: repo, logger: logger}
}

func (l *LookupService) findRequest(ctx context.Context, phone, seatNumber string) (*models.PaymentRequest, error) {
	if seatNumber != "" {
		return l.repo.FindPaymentRequestBySeat(ctx, seatNumber)
	}
	return l.repo.FindPaymentRequestByPhone(ctx, phone)
}

func (l *LookupService) Lookup(ctx context.Context, phone, seatNumber string) (datatypes.JSONMap, error) {
	seatNumber = strings.TrimSpace(seatNumber)
	phone = validation.NormalizePhone(phone)
	if seatNumber == "" && phone == "" {
		return nil, errs.ErrIncompleteSubmission
	}

	request, err := l.findRequest(ctx, phone, seatNumber)
	if err != nil {
		return nil, err
	}
	if !request.Paid {
		return nil, errs.ErrPaymentRequired
	}
	if request.HasResult() {
		return request.Result, nil
	}
	if request.SeatNumber == "" {
		return nil, errs.ErrResultUnavailable
	}

	result, err := l.repo.FindResultBySeat(ctx, request.SeatNumber)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrResultUnavailable
		}
		return nil, err
	}

	doc := result.Document()
	attached, err := l.repo.AttachResult(ctx, request.ID, doc)
	switch {
	case err != nil:
		l.logger.Warn("Failed to attach result to request", "request_id", request.ID, "error", err)
	case !attached:
		l.logger.Debug("Result already attached by a concurrent writer", "request_id", request.ID)
	}
	return doc, nil
}
