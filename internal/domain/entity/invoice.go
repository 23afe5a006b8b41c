package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice represents a billable document summarizing patient charges
type Invoice struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID       uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoices_tenant_number" json:"tenant_id"`
	PatientID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	InvoiceNumber  string             `gorm:"size:100;not null;uniqueIndex:idx_invoices_tenant_number" json:"invoice_number"`
	Date           time.Time          `gorm:"not null;index" json:"date"`
	DueDate        time.Time          `gorm:"not null" json:"due_date"`
	Status         enum.InvoiceStatus `gorm:"default:0;index" json:"status"`
	SubTotal       decimal.Decimal    `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	TaxAmount      decimal.Decimal    `gorm:"type:decimal(15,2);default:0" json:"tax_amount"`
	DiscountAmount decimal.Decimal    `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	TotalAmount    decimal.Decimal    `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	Notes          *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedByID    *uuid.UUID         `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	UpdatedByID    *uuid.UUID         `gorm:"type:uuid;column:updated_by" json:"updated_by,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Tenant   Tenant        `gorm:"foreignKey:TenantID" json:"-"`
	Patient  *Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem represents one billable line within an invoice.
// Items are created atomically with their invoice and are immutable afterwards.
type InvoiceItem struct {
	ID          uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID            `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ItemType    enum.InvoiceItemType `gorm:"default:4" json:"item_type"`
	ItemID      *uuid.UUID           `gorm:"type:uuid" json:"item_id,omitempty"`
	Description string               `gorm:"size:500;not null" json:"description"`
	Quantity    int                  `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal      `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Discount    decimal.Decimal      `gorm:"type:decimal(15,2);default:0" json:"discount"`
	TaxRate     decimal.Decimal      `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
	TotalAmount decimal.Decimal      `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	DeletedAt   gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
