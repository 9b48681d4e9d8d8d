package http_api

// routes sets up the routes for the HTTP server.
func (s *HTTPServer) routes() {
	s.router.GET("/healthz", s.healthz)

	// public
	s.router.POST("/login", s.login)
	s.router.POST("/pay", s.submitPayment)
	s.router.POST("/reserve", s.submitOnlineReservation)
	s.router.POST("/api/reserve-by-phone", s.submitPhoneReservation)
	s.router.POST("/api/check-result", s.checkResult)
	s.router.POST("/api/chat-inquiries", s.submitChatInquiry)
	s.router.GET(s.uploadsPrefix+"/:name", s.serveUpload)
	s.router.HEAD(s.uploadsPrefix+"/:name", s.serveUpload)

	// admin
	admin := s.router.Group("/api", s.authMiddleware())
	admin.GET("/requests", s.listRequests)
	admin.GET("/requests/:id", s.getRequest)
	admin.DELETE("/requests/:id", s.deleteRequest)

	admin.GET("/reservations", s.listReservations)
	admin.GET("/reservations/:id", s.getReservation)
	admin.DELETE("/reservations/:id", s.deleteReservation)

	admin.GET("/chat-inquiries", s.listChatInquiries)
	admin.GET("/chat-inquiries/:id", s.getChatInquiry)
	admin.DELETE("/chat-inquiries/:id", s.deleteChatInquiry)
	admin.PUT("/chat-inquiries/:id/read", s.markChatInquiryRead)

	admin.GET("/results", s.listResults)
	admin.GET("/admin-messages", s.listAdminMessages)
	admin.POST("/open-result", s.openResult)
	admin.POST("/send-admin-message", s.sendAdminMessage)
}
