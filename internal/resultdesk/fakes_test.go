package resultdesk

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/gizaresult/resultdesk/internal/errs"
	"github.com/gizaresult/resultdesk/internal/models"
)

// memRepo is an in-memory models.Repository that counts result queries.
type memRepo struct {
	mu sync.Mutex

	requests     []*models.PaymentRequest
	reservations []*models.Reservation
	inquiries    []*models.ChatInquiry
	results      []*models.Result
	messages     []*models.AdminMessage

	nextID           int
	resultQueries    int
	addMessageErr    error
	findRequestCalls []string
}

func newMemRepo() *memRepo { return &memRepo{} }

func (r *memRepo) id() string {
	r.nextID++
	return fmt.Sprintf("id-%d", r.nextID)
}

func (r *memRepo) AddPaymentRequest(_ context.Context, req *models.PaymentRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == "" {
		req.ID = r.id()
	}
	cp := *req
	r.requests = append(r.requests, &cp)
	return nil
}

func (r *memRepo) ListPaymentRequests(context.Context) ([]*models.PaymentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]*models.PaymentRequest(nil), r.requests...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) GetPaymentRequest(_ context.Context, id string) (*models.PaymentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ID == id {
			cp := *req
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *memRepo) oldestRequest(match func(*models.PaymentRequest) bool) (*models.PaymentRequest, error) {
	var found *models.PaymentRequest
	for _, req := range r.requests {
		if match(req) && (found == nil || req.CreatedAt.Before(found.CreatedAt)) {
			found = req
		}
	}
	if found == nil {
		return nil, errs.ErrNotFound
	}
	cp := *found
	return &cp, nil
}

func (r *memRepo) FindPaymentRequestBySeat(_ context.Context, seat string) (*models.PaymentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findRequestCalls = append(r.findRequestCalls, "seat:"+seat)
	return r.oldestRequest(func(p *models.PaymentRequest) bool { return p.SeatNumber == seat })
}

func (r *memRepo) FindPaymentRequestByPhone(_ context.Context, phone string) (*models.PaymentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findRequestCalls = append(r.findRequestCalls, "phone:"+phone)
	return r.oldestRequest(func(p *models.PaymentRequest) bool { return p.Phone == phone })
}

func (r *memRepo) OpenPaymentRequest(_ context.Context, id string, result datatypes.JSONMap, openedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ID == id {
			req.Paid = true
			req.Result = result
			req.OpenedAt = &openedAt
			return nil
		}
	}
	return errs.ErrNotFound
}

func (r *memRepo) AttachResult(_ context.Context, id string, result datatypes.JSONMap) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ID == id && req.Paid && req.Result == nil {
			req.Result = result
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) DeletePaymentRequest(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.requests[:0]
	for _, req := range r.requests {
		if req.ID != id {
			kept = append(kept, req)
		}
	}
	r.requests = kept
	return nil
}

func (r *memRepo) AddReservation(_ context.Context, res *models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res.ID == "" {
		res.ID = r.id()
	}
	cp := *res
	r.reservations = append(r.reservations, &cp)
	return nil
}

func (r *memRepo) ListReservations(context.Context) ([]*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Reservation(nil), r.reservations...), nil
}

func (r *memRepo) GetReservation(_ context.Context, id string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.reservations {
		if res.ID == id {
			return res, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *memRepo) DeleteReservation(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.reservations[:0]
	for _, res := range r.reservations {
		if res.ID != id {
			kept = append(kept, res)
		}
	}
	r.reservations = kept
	return nil
}

func (r *memRepo) AddChatInquiry(_ context.Context, inq *models.ChatInquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inq.ID == "" {
		inq.ID = r.id()
	}
	cp := *inq
	r.inquiries = append(r.inquiries, &cp)
	return nil
}

func (r *memRepo) ListChatInquiries(context.Context) ([]*models.ChatInquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]*models.ChatInquiry(nil), r.inquiries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) GetChatInquiry(_ context.Context, id string) (*models.ChatInquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inq := range r.inquiries {
		if inq.ID == id {
			return inq, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *memRepo) MarkChatInquiryRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inq := range r.inquiries {
		if inq.ID == id {
			inq.Status = models.InquiryRead
			return nil
		}
	}
	return errs.ErrNotFound
}

func (r *memRepo) DeleteChatInquiry(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.inquiries[:0]
	for _, inq := range r.inquiries {
		if inq.ID != id {
			kept = append(kept, inq)
		}
	}
	r.inquiries = kept
	return nil
}

func (r *memRepo) AddResults(_ context.Context, results []*models.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range results {
		if res.ID == "" {
			res.ID = r.id()
		}
		r.results = append(r.results, res)
	}
	return nil
}

func (r *memRepo) ListResults(context.Context) ([]*models.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Result(nil), r.results...), nil
}

func (r *memRepo) FindResultBySeat(_ context.Context, seat string) (*models.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resultQueries++
	for _, res := range r.results {
		if res.SeatNumber == seat {
			return res, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *memRepo) AddAdminMessage(_ context.Context, msg *models.AdminMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addMessageErr != nil {
		return r.addMessageErr
	}
	r.messages = append(r.messages, msg)
	return nil
}

func (r *memRepo) ListAdminMessages(context.Context) ([]*models.AdminMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.AdminMessage(nil), r.messages...), nil
}

func (r *memRepo) Close() error { return nil }

func (r *memRepo) request(id string) *models.PaymentRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ID == id {
			return req
		}
	}
	return nil
}

// recordingNotificator collects every notification it receives.
type recordingNotificator struct {
	mu   sync.Mutex
	sent []*models.Notification
}

func (n *recordingNotificator) SendNotification(_ context.Context, notification *models.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

// memAttachments keeps uploaded content in memory.
type memAttachments struct {
	files map[string][]byte
	n     int
}

func (a *memAttachments) Store(_ context.Context, content io.Reader, name string) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errs.ErrMissingAttachment
	}
	if a.files == nil {
		a.files = map[string][]byte{}
	}
	a.n++
	ref := fmt.Sprintf("%d-%s", a.n, name)
	a.files[ref] = data
	return ref, nil
}

func (a *memAttachments) URL(ref string) *string {
	if ref == "" {
		return nil
	}
	u := "/uploads/" + ref
	return &u
}

// MockMailer uses a function field so each test decides the outcome.
type MockMailer struct {
	SendMailFunc func(ctx context.Context, to, subject, text, html string) error
}

func (m *MockMailer) SendMail(ctx context.Context, to, subject, text, html string) error {
	if m.SendMailFunc != nil {
		return m.SendMailFunc(ctx, to, subject, text, html)
	}
	return nil
}
