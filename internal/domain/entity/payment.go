package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hospital-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment represents a payment recorded against an invoice
type Payment struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID        uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_payments_tenant_number" json:"tenant_id"`
	InvoiceID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"invoice_id"`
	PaymentNumber   string             `gorm:"size:100;not null;uniqueIndex:idx_payments_tenant_number" json:"payment_number"`
	Amount          decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentDate     time.Time          `gorm:"not null;index" json:"payment_date"`
	PaymentMethod   enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	ReferenceNumber *string            `gorm:"size:255" json:"reference_number,omitempty"`
	Notes           *string            `gorm:"type:text" json:"notes,omitempty"`
	Status          enum.PaymentStatus `gorm:"default:0;index" json:"status"`
	CreatedByID     *uuid.UUID         `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	UpdatedByID     *uuid.UUID         `gorm:"type:uuid;column:updated_by" json:"updated_by,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Tenant  Tenant   `gorm:"foreignKey:TenantID" json:"-"`
	Invoice *Invoice `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
