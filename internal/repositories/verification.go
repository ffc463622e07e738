package repositories

import (
	"context"
	"errors"
	"fmt"

	"invox/internal/models"

	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("verification record not found")

// VerificationRepository persists the verification audit trail.
type VerificationRepository interface {
	Save(ctx context.Context, record *models.VerificationRecord) error
	LatestByInvoice(ctx context.Context, invoiceID uint64) (*models.VerificationRecord, error)
	HistoryByInvoice(ctx context.Context, invoiceID uint64, limit int) ([]models.VerificationRecord, error)
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	if db == nil {
		panic("db is required")
	}
	return &verificationRepository{db: db}
}

// Save upserts by correlation id: one row per submission, updated as the
// request moves through its lifecycle.
func (r *verificationRepository) Save(ctx context.Context, record *models.VerificationRecord) error {
	var existing models.VerificationRecord
	err := r.db.WithContext(ctx).
		First(&existing, "correlation_id = ?", record.CorrelationID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
			return fmt.Errorf("create verification record: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup verification record: %w", err)
	}

	record.ID = existing.ID
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("update verification record: %w", err)
	}
	return nil
}

func (r *verificationRepository) LatestByInvoice(ctx context.Context, invoiceID uint64) (*models.VerificationRecord, error) {
	var record models.VerificationRecord
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("submitted_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest verification for invoice %d: %w", invoiceID, err)
	}
	return &record, nil
}

func (r *verificationRepository) HistoryByInvoice(ctx context.Context, invoiceID uint64, limit int) ([]models.VerificationRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var records []models.VerificationRecord
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("verification history for invoice %d: %w", invoiceID, err)
	}
	return records, nil
}
