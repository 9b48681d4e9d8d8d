package http_api

import (
	"time"

	"github.com/gizaresult/resultdesk/internal/models"
)

// requestView exposes the screenshot as a public URL or null.
type requestView struct {
	*models.PaymentRequest
	Screenshot *string `json:"screenshot"`
}

type reservationView struct {
	*models.Reservation
	Screenshot *string `json:"screenshot"`
}

type chatInquiryView struct {
	ID        string               `json:"id"`
	Message   string               `json:"message"`
	UserName  string               `json:"userName"`
	UserPhone string               `json:"userPhone"`
	UserEmail string               `json:"userEmail"`
	CreatedAt time.Time            `json:"created_at"`
	Status    models.InquiryStatus `json:"status"`
}

func (s *HTTPServer) requestView(r *models.PaymentRequest) requestView {
	return requestView{PaymentRequest: r, Screenshot: s.attachments.URL(r.Screenshot)}
}

func (s *HTTPServer) reservationView(r *models.Reservation) reservationView {
	return reservationView{Reservation: r, Screenshot: s.attachments.URL(r.Screenshot)}
}

func newChatInquiryView(c *models.ChatInquiry) chatInquiryView {
	return chatInquiryView{
		ID:        c.ID,
		Message:   c.Message,
		UserName:  c.Submitter.DisplayName(),
		UserPhone: c.Submitter.DisplayPhone(),
		UserEmail: c.Submitter.DisplayEmail(),
		CreatedAt: c.CreatedAt,
		Status:    c.Status,
	}
}

// resultView flattens the result data next to its id and seat number.
func newResultView(r *models.Result) map[string]interface{} {
	view := make(map[string]interface{}, len(r.Data)+2)
	for k, v := range r.Data {
		view[k] = v
	}
	view["id"] = r.ID
	view["seatNumber"] = r.SeatNumber
	return view
}
