package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient represents a patient registered with a hospital
type Patient struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_patients_tenant_mrn" json:"tenant_id"`
	MRN           string         `gorm:"size:100;not null;uniqueIndex:idx_patients_tenant_mrn" json:"mrn"`
	FirstName     string         `gorm:"size:255;not null" json:"first_name"`
	LastName      string         `gorm:"size:255;not null" json:"last_name"`
	DateOfBirth   *time.Time     `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender        *string        `gorm:"size:20" json:"gender,omitempty"`
	BloodGroup    *string        `gorm:"size:10" json:"blood_group,omitempty"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	Email         *string        `gorm:"size:255" json:"email,omitempty"`
	Address       *string        `gorm:"type:text" json:"address,omitempty"`
	EmergencyName *string        `gorm:"size:255" json:"emergency_name,omitempty"`
	EmergencyTel  *string        `gorm:"size:50" json:"emergency_tel,omitempty"`
	CreatedByID   *uuid.UUID     `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	UpdatedByID   *uuid.UUID     `gorm:"type:uuid;column:updated_by" json:"updated_by,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant   Tenant    `gorm:"foreignKey:TenantID" json:"-"`
	Invoices []Invoice `gorm:"foreignKey:PatientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new patient
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Patient model
func (Patient) TableName() string {
	return "patients"
}

// FullName returns the patient's display name
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
