package notificator

import (
	"fmt"
	"html"
	"strings"

	"github.com/gizaresult/resultdesk/internal/models"
)

// message is a notification rendered for both channels. Text goes to
// email, HTML to Telegram.
type message struct {
	Subject string
	Text    string
	HTML    string
}

type field struct {
	label, value string
}

func build(title string, fields []field, footer ...field) message {
	var text, body strings.Builder
	text.WriteString(title + ":\n")
	fmt.Fprintf(&body, "<b>%s:</b>\n", html.EscapeString(title))
	for _, f := range fields {
		fmt.Fprintf(&text, "%s: %s\n", f.label, f.value)
		fmt.Fprintf(&body, "<b>%s:</b> %s\n", f.label, html.EscapeString(f.value))
	}
	for _, f := range footer {
		fmt.Fprintf(&text, "\n%s:\n%s\n", f.label, f.value)
		fmt.Fprintf(&body, "\n<b>%s:</b>\n%s\n", f.label, html.EscapeString(f.value))
	}
	return message{Subject: title, Text: text.String(), HTML: body.String()}
}

func render(n *models.Notification) (message, bool) {
	if n == nil {
		return message{}, false
	}
	switch n.Kind {
	case models.EventPaymentSubmitted:
		if p := n.Payment; p != nil {
			return build("New payment request", []field{
				{"National ID", p.NationalID},
				{"Seat number", p.SeatNumber},
				{"Phone", p.Phone},
				{"Email", p.Email},
				{"Request ID", p.ID},
			}), true
		}
	case models.EventReservationSubmitted:
		if r := n.Reservation; r != nil {
			title := "New reservation"
			if r.Method == models.ReservationPhone {
				title = "New reservation by phone"
			}
			return build(title, []field{
				{"National ID", r.NationalID},
				{"Phone", r.Phone},
				{"Email", r.Email},
				{"Sender phone", r.SenderPhone},
				{"Reservation ID", r.ID},
			}), true
		}
	case models.EventChatInquirySubmitted:
		if c := n.Inquiry; c != nil {
			return build("New chat inquiry", []field{
				{"Name", c.Submitter.DisplayName()},
				{"Phone", c.Submitter.DisplayPhone()},
				{"Email", c.Submitter.DisplayEmail()},
				{"Inquiry ID", c.ID},
			}, field{"Message", c.Message}), true
		}
	}
	return message{}, false
}
