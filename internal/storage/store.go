// Package storage is the local persistence layer: a single sqlite file
// holding clients, invoices, the company profile and saved item templates.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ttrabelsi/facturier/internal/models"
)

var (
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrClientNameRequired  = errors.New("client name is required")
	ErrCompanyNameRequired = errors.New("company name is required")
)

// companyRowID pins CompanyInfo to a single row: last saved wins.
const companyRowID = 1

type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the sqlite database at path and brings
// the schema up to date.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(
		&models.Client{},
		&models.CompanyInfo{},
		&models.SavedItem{},
		&models.Invoice{},
		&models.LineItem{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GenerateID returns a process-wide-unique opaque token.
func (s *Store) GenerateID() string {
	return uuid.NewString()
}

// GenerateInvoiceNumber returns the next number in the zero-padded INV-
// sequence. Zero padding keeps lexical and numeric order aligned, so the
// highest stored number is the last one issued.
func (s *Store) GenerateInvoiceNumber() (string, error) {
	var last models.Invoice
	err := s.db.Select("invoice_number").
		Where("invoice_number LIKE ?", "INV-%").
		Order("invoice_number DESC").
		Take(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "INV-0001", nil
		}
		return "", fmt.Errorf("last invoice number: %w", err)
	}
	seq, _ := strconv.Atoi(strings.TrimPrefix(last.InvoiceNumber, "INV-"))
	return fmt.Sprintf("INV-%04d", seq+1), nil
}

// GetInvoices returns every invoice, newest first, items in display order.
func (s *Store) GetInvoices() ([]models.Invoice, error) {
	var invs []models.Invoice
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("created_at DESC").
		Find(&invs).Error
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invs, nil
}

// GetInvoiceByNumber looks an invoice up by its human-readable number.
func (s *Store) GetInvoiceByNumber(number string) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("invoice_number = ?", number).
		Take(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("load invoice %s: %w", number, err)
	}
	return &inv, nil
}

// SaveInvoice upserts an invoice and replaces its line items. Missing ids
// are assigned, positions renumbered, and UpdatedAt refreshed.
func (s *Store) SaveInvoice(inv *models.Invoice) error {
	now := time.Now().UTC()
	if inv.ID == "" {
		inv.ID = s.GenerateID()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
	}
	inv.UpdatedAt = now
	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = s.GenerateID()
		}
		inv.Items[i].InvoiceID = inv.ID
		inv.Items[i].Position = i
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.LineItem{}).Error; err != nil {
			return fmt.Errorf("replace items: %w", err)
		}
		if err := tx.Omit("Items").Save(inv).Error; err != nil {
			return fmt.Errorf("save invoice: %w", err)
		}
		if len(inv.Items) > 0 {
			if err := tx.Create(&inv.Items).Error; err != nil {
				return fmt.Errorf("save items: %w", err)
			}
		}
		return nil
	})
}

// DeleteInvoice removes an invoice and all of its line items.
func (s *Store) DeleteInvoice(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.LineItem{}).Error; err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&models.Invoice{})
		if res.Error != nil {
			return fmt.Errorf("delete invoice: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInvoiceNotFound
		}
		return nil
	})
}

// ToggleInvoiceStatus flips the paid flag and refreshes the modification
// timestamp in one transaction; no intermediate state is observable.
func (s *Store) ToggleInvoiceStatus(id string) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&inv, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return fmt.Errorf("load invoice: %w", err)
		}
		updates := map[string]any{
			"is_paid":    !inv.IsPaid,
			"updated_at": time.Now().UTC(),
		}
		if err := tx.Model(&inv).Updates(updates).Error; err != nil {
			return fmt.Errorf("toggle status: %w", err)
		}
		return tx.
			Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
			Take(&inv, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetClients returns every client, oldest first.
func (s *Store) GetClients() ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.Order("created_at").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// GetClientByID resolves the weak invoice->client reference. A nil client
// with nil error means the id no longer resolves; callers must render a
// "no client" presentation rather than fail.
func (s *Store) GetClientByID(id string) (*models.Client, error) {
	if id == "" {
		return nil, nil
	}
	var c models.Client
	err := s.db.Take(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load client %s: %w", id, err)
	}
	return &c, nil
}

// SaveClient upserts a client, assigning id and creation time when new.
func (s *Store) SaveClient(c *models.Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrClientNameRequired
	}
	if c.ID == "" {
		c.ID = s.GenerateID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if err := s.db.Save(c).Error; err != nil {
		return fmt.Errorf("save client: %w", err)
	}
	return nil
}

// GetCompanyInfo returns the sender profile, or nil when none was saved yet.
func (s *Store) GetCompanyInfo() (*models.CompanyInfo, error) {
	var ci models.CompanyInfo
	err := s.db.Take(&ci, "id = ?", companyRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load company info: %w", err)
	}
	return &ci, nil
}

// SaveCompanyInfo replaces the singleton sender profile.
func (s *Store) SaveCompanyInfo(ci *models.CompanyInfo) error {
	if strings.TrimSpace(ci.Name) == "" {
		return ErrCompanyNameRequired
	}
	ci.ID = companyRowID
	if err := s.db.Save(ci).Error; err != nil {
		return fmt.Errorf("save company info: %w", err)
	}
	return nil
}

// GetSavedItems returns every item template, oldest first.
func (s *Store) GetSavedItems() ([]models.SavedItem, error) {
	var items []models.SavedItem
	if err := s.db.Order("created_at").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list saved items: %w", err)
	}
	return items, nil
}

// SaveSavedItem upserts an item template.
func (s *Store) SaveSavedItem(si *models.SavedItem) error {
	if si.ID == "" {
		si.ID = s.GenerateID()
	}
	if si.CreatedAt.IsZero() {
		si.CreatedAt = time.Now().UTC()
	}
	if err := s.db.Save(si).Error; err != nil {
		return fmt.Errorf("save saved item: %w", err)
	}
	return nil
}
