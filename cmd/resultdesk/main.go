package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/gizaresult/resultdesk/internal/attachments"
	"github.com/gizaresult/resultdesk/internal/auth"
	"github.com/gizaresult/resultdesk/internal/config"
	"github.com/gizaresult/resultdesk/internal/http_api"
	"github.com/gizaresult/resultdesk/internal/models"
	"github.com/gizaresult/resultdesk/internal/notificator"
	"github.com/gizaresult/resultdesk/internal/repository"
	"github.com/gizaresult/resultdesk/internal/resultdesk"
	"github.com/gizaresult/resultdesk/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "resultdesk",
		Usage: "Exam result desk: payment requests, reservations and paid result lookup",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "postgres-user", Aliases: []string{"u"}, Usage: "Postgres user"},
			&cli.StringFlag{Name: "postgres-password", Aliases: []string{"p"}, Usage: "Postgres password"},
			&cli.StringFlag{Name: "postgres-host", Aliases: []string{"t"}, Usage: "Postgres host"},
			&cli.IntFlag{Name: "postgres-port", Aliases: []string{"P"}, Usage: "Postgres port"},
			&cli.StringFlag{Name: "postgres-db", Aliases: []string{"d"}, Usage: "Postgres database name"},
			&cli.IntFlag{Name: "api-port", Aliases: []string{"a"}, Usage: "HTTP API port"},
			&cli.StringFlag{Name: "uploads-dir", Usage: "Directory for uploaded screenshots"},
			&cli.BoolFlag{Name: "development", Aliases: []string{"D"}, Usage: "Development mode"},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API (default)",
				Action: serve,
			},
			{
				Name:  "load-results",
				Usage: "Load a JSON array of results keyed by seatNumber",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Path to results JSON", Required: true},
				},
				Action: loadResults,
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the environment and applies global flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.LoadConfig()

	if c.IsSet("postgres-user") {
		cfg.PostgresUser = c.String("postgres-user")
	}
	if c.IsSet("postgres-password") {
		cfg.PostgresPassword = c.String("postgres-password")
	}
	if c.IsSet("postgres-host") {
		cfg.PostgresHost = c.String("postgres-host")
	}
	if c.IsSet("postgres-port") {
		cfg.PostgresPort = c.Int("postgres-port")
	}
	if c.IsSet("postgres-db") {
		cfg.PostgresDB = c.String("postgres-db")
	}
	if c.IsSet("api-port") {
		cfg.APIPort = c.Int("api-port")
	}
	if c.IsSet("uploads-dir") {
		cfg.UploadsDir = c.String("uploads-dir")
	}
	if c.IsSet("development") {
		cfg.Development = c.Bool("development")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setup(c *cli.Context) (*config.Config, *logger.Logger, *repository.DB, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.NewLogger(cfg.Development)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %v", err)
	}

	db, err := repository.NewPostgresDB(cfg.PostgresDSN(), log.Named("repository"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %v", err)
	}
	return cfg, log, db, nil
}

func newNotificator(cfg *config.Config, log *logger.Logger) (*notificator.Notificator, *notificator.EmailNotificator, error) {
	var (
		emailNotif *notificator.EmailNotificator
		telNotif   *notificator.TelegramNotificator
	)

	if cfg.SMTPHost != "" && cfg.SMTPSender != "" {
		emailNotif = notificator.NewEmailNotificator(log.Named("email"), cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPSender, cfg.SenderName, cfg.NotificationEmail)
	}
	// admin replies need SMTP; admin notifications also need a destination
	adminChannel := emailNotif
	if !cfg.EmailEnabled() {
		adminChannel = nil
		log.Warn("Email notifications disabled, SMTP_HOST or NOTIFICATION_EMAIL is not set")
	}

	if cfg.TelegramEnabled() {
		var err error
		telNotif, err = notificator.NewTelegramNotificator(log.Named("telegram"), cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			return nil, nil, err
		}
	} else {
		log.Info("Telegram notifications disabled")
	}

	return notificator.NewNotificator(log.Named("notificator"), telNotif, adminChannel), emailNotif, nil
}

func serve(c *cli.Context) error {
	cfg, log, db, err := setup(c)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer db.Close()

	store, err := attachments.NewOsStore(log.Named("attachments"), cfg.UploadsDir, cfg.UploadsURLPrefix)
	if err != nil {
		return err
	}

	notif, mailer, err := newNotificator(cfg, log)
	if err != nil {
		return err
	}
	var replyMailer models.Mailer
	if mailer != nil {
		replyMailer = mailer
	}

	submissions := resultdesk.NewSubmissionService(db, store, notif, replyMailer, cfg.SenderName, log.Named("submissions"))
	lookup := resultdesk.NewLookupService(db, log.Named("lookup"))
	gate := auth.NewGate(cfg.JWTSecret, cfg.AdminUser, cfg.AdminPassword, cfg.AdminPasswordHash)

	apiServer := http_api.NewHTTPServer(http_api.Services{
		Submissions:   submissions,
		Lookup:        lookup,
		Gate:          gate,
		Attachments:   store,
		Uploads:       store.FileSystem(),
		UploadsPrefix: cfg.UploadsURLPrefix,
	}, cfg.APIPort, log.Named("http"))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- apiServer.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutdown signal received")
		return apiServer.Shutdown()
	}
}

func loadResults(c *cli.Context) error {
	_, log, db, err := setup(c)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer db.Close()

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open results file: %w", err)
	}
	defer f.Close()

	n, err := resultdesk.LoadResults(context.Background(), db, f)
	if err != nil {
		return err
	}
	log.Info("Results loaded", "count", n, "file", c.String("file"))
	return nil
}
