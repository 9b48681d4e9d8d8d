package http_api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gizaresult/resultdesk/internal/models"
	"github.com/gizaresult/resultdesk/pkg/logger"
)

const (
	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout = 10 * time.Second
	// MaxUploadSize caps multipart bodies kept in memory.
	MaxUploadSize = 10 << 20
)

// Services are the collaborators the HTTP layer delegates to.
type Services struct {
	Submissions models.Submissions
	Lookup      models.ResultLookup
	Gate        models.CredentialGate
	Attachments models.AttachmentStore

	// Uploads serves stored attachments under UploadsPrefix.
	Uploads       http.FileSystem
	UploadsPrefix string
}

// HTTPServer is the HTTP server struct that will serve the API
type HTTPServer struct {
	logger *logger.Logger

	router *gin.Engine
	port   int
	server *http.Server

	submissions models.Submissions
	lookup      models.ResultLookup
	gate        models.CredentialGate
	attachments models.AttachmentStore

	uploads       http.FileSystem
	uploadsPrefix string
}

// NewHTTPServer creates a new HTTP server instance
func NewHTTPServer(services Services, port int, logger *logger.Logger) *HTTPServer {
	router := gin.Default()
	router.MaxMultipartMemory = MaxUploadSize

	router.Use(corsMiddleware())

	prefix := services.UploadsPrefix
	if prefix == "" {
		prefix = "/uploads"
	}

	server := &HTTPServer{
		router:        router,
		port:          port,
		logger:        logger,
		submissions:   services.Submissions,
		lookup:        services.Lookup,
		gate:          services.Gate,
		attachments:   services.Attachments,
		uploads:       services.Uploads,
		uploadsPrefix: prefix,
	}

	server.routes()

	return server
}

// Handler exposes the router, mainly for httptest.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *HTTPServer) Start() error {
	addr := fmt.Sprintf("0.0.0.0:%v", s.port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Starting HTTP server", "address", addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start the HTTP server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *HTTPServer) Shutdown() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	s.logger.Info("HTTP server shut down successfully")
	return nil
}
