package http_api

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gizaresult/resultdesk/internal/models"
)

// LoginRequest represents the JSON body for admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the signed admin token
type LoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresIn string    `json:"expiresIn"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SubmissionResponse is returned by every public submission endpoint
type SubmissionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// CheckResultRequest looks a result up by seat number or phone
type CheckResultRequest struct {
	Phone      string `json:"phone"`
	SeatNumber string `json:"seatNumber"`
}

// ChatInquiryRequest is a chat widget submission
type ChatInquiryRequest struct {
	Message  string           `json:"message"`
	UserData models.Submitter `json:"userData"`
}

// OpenResultRequest names the seat whose result the admin opens
type OpenResultRequest struct {
	SeatNumber string `json:"seatNumber"`
}

// AdminMessageRequest is an admin reply to a user
type AdminMessageRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// paymentForm and reservationForm bind the multipart text fields.
type paymentForm struct {
	NationalID string `form:"nationalId"`
	SeatNumber string `form:"seatNumber"`
	Phone      string `form:"phone"`
	Email      string `form:"email"`
}

type reservationForm struct {
	NationalID  string `form:"nationalId"`
	Phone       string `form:"phone"`
	Email       string `form:"email"`
	SenderPhone string `form:"senderPhone"`
}

func (s *HTTPServer) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	token, err := s.gate.Login(req.Username, req.Password)
	if err != nil {
		s.logger.Warn("Failed admin login", "username", req.Username, "client_ip", c.ClientIP())
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Success:   true,
		Token:     token.Token,
		ExpiresIn: "24h",
		ExpiresAt: token.ExpiresAt,
	})
}

// screenshot opens the uploaded screenshot, nil when none was sent. The
// returned closer must be called once the content has been consumed.
func screenshot(c *gin.Context) (*models.Attachment, io.Closer, error) {
	fh, err := c.FormFile("screenshot")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, io.NopCloser(nil), nil
		}
		return nil, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &models.Attachment{Filename: fh.Filename, Content: f}, f, nil
}

func (s *HTTPServer) submitPayment(c *gin.Context) {
	var form paymentForm
	if err := c.ShouldBind(&form); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.badRequest(c, err)
		return
	}
	file, closer, err := screenshot(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	defer closer.Close()

	request, err := s.submissions.SubmitPayment(c.Request.Context(), models.PaymentInput{
		NationalID: form.NationalID,
		SeatNumber: form.SeatNumber,
		Phone:      form.Phone,
		Email:      form.Email,
	}, file)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmissionResponse{
		Success: true,
		Message: "Your request was received, the payment will be confirmed soon.",
		ID:      request.ID,
	})
}

func (s *HTTPServer) submitOnlineReservation(c *gin.Context) {
	s.submitReservation(c, models.ReservationOnline)
}

func (s *HTTPServer) submitPhoneReservation(c *gin.Context) {
	s.submitReservation(c, models.ReservationPhone)
}

func (s *HTTPServer) submitReservation(c *gin.Context, method models.ReservationMethod) {
	var form reservationForm
	if err := c.ShouldBind(&form); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.badRequest(c, err)
		return
	}
	file, closer, err := screenshot(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	defer closer.Close()

	reservation, err := s.submissions.SubmitReservation(c.Request.Context(), models.ReservationInput{
		NationalID:  form.NationalID,
		Phone:       form.Phone,
		Email:       form.Email,
		SenderPhone: form.SenderPhone,
	}, file, method)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmissionResponse{
		Success: true,
		Message: "Reservation recorded successfully.",
		ID:      reservation.ID,
	})
}

func (s *HTTPServer) checkResult(c *gin.Context) {
	var req CheckResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	result, err := s.lookup.Lookup(c.Request.Context(), req.Phone, req.SeatNumber)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

func (s *HTTPServer) submitChatInquiry(c *gin.Context) {
	var req ChatInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	inquiry, err := s.submissions.SubmitChatInquiry(c.Request.Context(), req.Message, req.UserData)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SubmissionResponse{
		Success: true,
		Message: "Your inquiry was sent.",
		ID:      inquiry.ID,
	})
}

// serveUpload serves a single stored attachment. Directories are never listed.
func (s *HTTPServer) serveUpload(c *gin.Context) {
	name := path.Base(path.Clean("/" + c.Param("name")))
	if s.uploads == nil || name == "/" || name == "." {
		c.Status(http.StatusNotFound)
		return
	}

	f, err := s.uploads.Open("/" + name)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Failed to open upload", "name", name, "error", err)
		}
		c.Status(http.StatusNotFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}

func (s *HTTPServer) listRequests(c *gin.Context) {
	requests, err := s.submissions.ListPaymentRequests(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	views := make([]requestView, 0, len(requests))
	for _, r := range requests {
		views = append(views, s.requestView(r))
	}
	c.JSON(http.StatusOK, gin.H{"requests": views})
}

func (s *HTTPServer) getRequest(c *gin.Context) {
	request, err := s.submissions.GetPaymentRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": s.requestView(request)})
}

func (s *HTTPServer) deleteRequest(c *gin.Context) {
	if err := s.submissions.DeletePaymentRequest(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *HTTPServer) listReservations(c *gin.Context) {
	reservations, err := s.submissions.ListReservations(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	views := make([]reservationView, 0, len(reservations))
	for _, r := range reservations {
		views = append(views, s.reservationView(r))
	}
	c.JSON(http.StatusOK, gin.H{"reservations": views})
}

func (s *HTTPServer) getReservation(c *gin.Context) {
	reservation, err := s.submissions.GetReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": s.reservationView(reservation)})
}

func (s *HTTPServer) deleteReservation(c *gin.Context) {
	if err := s.submissions.DeleteReservation(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *HTTPServer) listChatInquiries(c *gin.Context) {
	inquiries, err := s.submissions.ListChatInquiries(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	views := make([]chatInquiryView, 0, len(inquiries))
	for _, inq := range inquiries {
		views = append(views, newChatInquiryView(inq))
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": views})
}

func (s *HTTPServer) getChatInquiry(c *gin.Context) {
	inquiry, err := s.submissions.GetChatInquiry(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiry": newChatInquiryView(inquiry)})
}

func (s *HTTPServer) deleteChatInquiry(c *gin.Context) {
	if err := s.submissions.DeleteChatInquiry(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *HTTPServer) markChatInquiryRead(c *gin.Context) {
	if err := s.submissions.MarkChatInquiryRead(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *HTTPServer) listResults(c *gin.Context) {
	results, err := s.submissions.ListResults(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	views := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		views = append(views, newResultView(r))
	}
	c.JSON(http.StatusOK, gin.H{"results": views})
}

func (s *HTTPServer) listAdminMessages(c *gin.Context) {
	messages, err := s.submissions.ListAdminMessages(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	if messages == nil {
		messages = []*models.AdminMessage{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (s *HTTPServer) openResult(c *gin.Context) {
	var req OpenResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	if err := s.submissions.OpenResult(c.Request.Context(), req.SeatNumber); err != nil {
		s.respondError(c, err)
		return
	}
	s.logger.Info("Admin opened result", "seat_number", req.SeatNumber, "admin", adminName(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Result opened successfully"})
}

func (s *HTTPServer) sendAdminMessage(c *gin.Context) {
	var req AdminMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	if err := s.submissions.SendAdminReply(c.Request.Context(), req.Email, req.Message); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message sent successfully"})
}

func adminName(c *gin.Context) string {
	if v, ok := c.Get(adminClaimsKey); ok {
		if claims, ok := v.(*models.AdminClaims); ok {
			return claims.Username
		}
	}
	return ""
}
