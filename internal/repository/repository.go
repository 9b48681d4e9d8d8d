package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gizaresult/resultdesk/internal/errs"
	"github.com/gizaresult/resultdesk/internal/models"
	"github.com/gizaresult/resultdesk/pkg/logger"
)

// DB implements models.Repository on top of gorm.
type DB struct {
	logger *logger.Logger

	Conn *gorm.DB
}

var _ models.Repository = (*DB)(nil)

// New migrates the schema on an open gorm connection and wraps it.
func New(conn *gorm.DB, logger *logger.Logger) (*DB, error) {
	if err := conn.AutoMigrate(
		&models.PaymentRequest{},
		&models.Reservation{},
		&models.ChatInquiry{},
		&models.Result{},
		&models.AdminMessage{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	return &DB{Conn: conn, logger: logger}, nil
}

func (db *DB) Close() error {
	sqlDB, err := db.Conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// first runs a First query and turns a missing row into errs.ErrNotFound.
func first(tx *gorm.DB, dest interface{}, what string) error {
	if err := tx.First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("failed to get %s: %w", what, err)
	}
	return nil
}

func (db *DB) AddPaymentRequest(ctx context.Context, request *models.PaymentRequest) error {
	if err := db.Conn.WithContext(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("failed to create payment request: %w", err)
	}
	db.logger.Debug("Payment request stored", "id", request.ID)
	return nil
}

func (db *DB) ListPaymentRequests(ctx context.Context) ([]*models.PaymentRequest, error) {
	var requests []*models.PaymentRequest
	if err := db.Conn.WithContext(ctx).Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment requests: %w", err)
	}
	return requests, nil
}

func (db *DB) GetPaymentRequest(ctx context.Context, id string) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	if err := first(db.Conn.WithContext(ctx).Where("id = ?", id), &request, "payment request"); err != nil {
		return nil, err
	}
	return &request, nil
}

func (db *DB) FindPaymentRequestBySeat(ctx context.Context, seatNumber string) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	tx := db.Conn.WithContext(ctx).Where("seat_number = ?", seatNumber).Order("created_at ASC")
	if err := first(tx, &request, "payment request by seat"); err != nil {
		return nil, err
	}
	return &request, nil
}

func (db *DB) FindPaymentRequestByPhone(ctx context.Context, phone string) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	tx := db.Conn.WithContext(ctx).Where("phone = ?", phone).Order("created_at ASC")
	if err := first(tx, &request, "payment request by phone"); err != nil {
		return nil, err
	}
	return &request, nil
}

func (db *DB) OpenPaymentRequest(ctx context.Context, id string, result datatypes.JSONMap, openedAt time.Time) error {
	tx := db.Conn.WithContext(ctx).Model(&models.PaymentRequest{}).Where("id = ?", id).Updates(map[string]interface{}{
		"paid":      true,
		"result":    result,
		"opened_at": openedAt,
	})
	if tx.Error != nil {
		return fmt.Errorf("failed to open payment request: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (db *DB) AttachResult(ctx context.Context, id string, result datatypes.JSONMap) (bool, error) {
	tx := db.Conn.WithContext(ctx).Model(&models.PaymentRequest{}).
		Where("id = ? AND paid = ? AND result IS NULL", id, true).
		Update("result", result)
	if tx.Error != nil {
		return false, fmt.Errorf("failed to attach result: %w", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (db *DB) DeletePaymentRequest(ctx context.Context, id string) error {
	if err := db.Conn.WithContext(ctx).Where("id = ?", id).Delete(&models.PaymentRequest{}).Error; err != nil {
		return fmt.Errorf("failed to delete payment request: %w", err)
	}
	return nil
}

func (db *DB) AddReservation(ctx context.Context, reservation *models.Reservation) error {
	if err := db.Conn.WithContext(ctx).Create(reservation).Error; err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	db.logger.Debug("Reservation stored", "id", reservation.ID, "method", reservation.Method)
	return nil
}

func (db *DB) ListReservations(ctx context.Context) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	if err := db.Conn.WithContext(ctx).Order("reserved_at DESC").Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

func (db *DB) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := first(db.Conn.WithContext(ctx).Where("id = ?", id), &reservation, "reservation"); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (db *DB) DeleteReservation(ctx context.Context, id string) error {
	if err := db.Conn.WithContext(ctx).Where("id = ?", id).Delete(&models.Reservation{}).Error; err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

func (db *DB) AddChatInquiry(ctx context.Context, inquiry *models.ChatInquiry) error {
	if err := db.Conn.WithContext(ctx).Create(inquiry).Error; err != nil {
		return fmt.Errorf("failed to create chat inquiry: %w", err)
	}
	return nil
}

func (db *DB) ListChatInquiries(ctx context.Context) ([]*models.ChatInquiry, error) {
	var inquiries []*models.ChatInquiry
	if err := db.Conn.WithContext(ctx).Order("created_at DESC").Find(&inquiries).Error; err != nil {
		return nil, fmt.Errorf("failed to list chat inquiries: %w", err)
	}
	return inquiries, nil
}

func (db *DB) GetChatInquiry(ctx context.Context, id string) (*models.ChatInquiry, error) {
	var inquiry models.ChatInquiry
	if err := first(db.Conn.WithContext(ctx).Where("id = ?", id), &inquiry, "chat inquiry"); err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (db *DB) MarkChatInquiryRead(ctx context.Context, id string) error {
	tx := db.Conn.WithContext(ctx).Model(&models.ChatInquiry{}).Where("id = ?", id).Update("status", models.InquiryRead)
	if tx.Error != nil {
		return fmt.Errorf("failed to mark chat inquiry read: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (db *DB) DeleteChatInquiry(ctx context.Context, id string) error {
	if err := db.Conn.WithContext(ctx).Where("id = ?", id).Delete(&models.ChatInquiry{}).Error; err != nil {
		return fmt.Errorf("failed to delete chat inquiry: %w", err)
	}
	return nil
}

// AddResults inserts results in one batch. Creation times are spaced so
// that insertion order survives in created_at.
func (db *DB) AddResults(ctx context.Context, results []*models.Result) error {
	if len(results) == 0 {
		return nil
	}
	base := time.Now()
	for i, r := range results {
		if r.CreatedAt.IsZero() {
			r.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
		}
	}
	if err := db.Conn.WithContext(ctx).CreateInBatches(results, 500).Error; err != nil {
		return fmt.Errorf("failed to add results: %w", err)
	}
	db.logger.Info("Results loaded", "count", len(results))
	return nil
}

func (db *DB) ListResults(ctx context.Context) ([]*models.Result, error) {
	var results []*models.Result
	if err := db.Conn.WithContext(ctx).Order("created_at ASC").Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}

func (db *DB) FindResultBySeat(ctx context.Context, seatNumber string) (*models.Result, error) {
	var result models.Result
	tx := db.Conn.WithContext(ctx).Where("seat_number = ?", seatNumber).Order("created_at ASC")
	if err := first(tx, &result, "result by seat"); err != nil {
		return nil, err
	}
	return &result, nil
}

func (db *DB) AddAdminMessage(ctx context.Context, message *models.AdminMessage) error {
	if err := db.Conn.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed to record admin message: %w", err)
	}
	return nil
}

func (db *DB) ListAdminMessages(ctx context.Context) ([]*models.AdminMessage, error) {
	var messages []*models.AdminMessage
	if err := db.Conn.WithContext(ctx).Order("sent_at DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list admin messages: %w", err)
	}
	return messages, nil
}
