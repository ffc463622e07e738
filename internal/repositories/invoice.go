package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"invox/internal/models"
	"invox/internal/repositories/cache"

	"gorm.io/gorm"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

const invoiceCacheTTL = 5 * time.Minute

// InvoiceRepository defines invoice persistence operations.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id uint64) (*models.Invoice, error)
	List(ctx context.Context, limit, offset int) ([]models.Invoice, error)
}

type invoiceRepository struct {
	db    *gorm.DB
	cache *cache.Service
}

// NewInvoiceRepository creates an invoice repository. The cache may be nil.
func NewInvoiceRepository(db *gorm.DB, c *cache.Service) InvoiceRepository {
	if db == nil {
		panic("db is required")
	}
	return &invoiceRepository{db: db, cache: c}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.SetJSON(ctx, invoiceCacheKey(invoice.ID), invoice, invoiceCacheTTL); err != nil {
			log.Printf("Failed to cache invoice %d: %v", invoice.ID, err)
		}
	}
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uint64) (*models.Invoice, error) {
	if r.cache != nil {
		var cached models.Invoice
		if err := r.cache.GetJSON(ctx, invoiceCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	var invoice models.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice %d: %w", id, err)
	}

	if r.cache != nil {
		if err := r.cache.SetJSON(ctx, invoiceCacheKey(id), &invoice, invoiceCacheTTL); err != nil {
			log.Printf("Failed to cache invoice %d: %v", id, err)
		}
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, limit, offset int) ([]models.Invoice, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var invoices []models.Invoice
	err := r.db.WithContext(ctx).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

func invoiceCacheKey(id uint64) string {
	return fmt.Sprintf("invoice:%d", id)
}
