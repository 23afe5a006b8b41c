package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/sangkips/hospital-api/internal/config"
	"github.com/sangkips/hospital-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User-related entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},

		// Tenancy entities
		&entity.Tenant{},
		&entity.TenantMembership{},

		// Clinical entities
		&entity.Patient{},

		// Billing entities
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Payment{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (roles, permissions, admin user)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Create default permissions
	permissions := []entity.Permission{
		{Name: "view-dashboard", GuardName: "web"},
		{Name: "manage-patients", GuardName: "web"},
		{Name: "manage-invoices", GuardName: "web"},
		{Name: "manage-payments", GuardName: "web"},
		{Name: "manage-users", GuardName: "web"},
		{Name: "manage-tenants", GuardName: "web"},
		{Name: "view-reports", GuardName: "web"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Printf("Warning: failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	// Reload permissions with IDs
	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	// Create admin role with all permissions
	var adminRole entity.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		adminRole = entity.Role{
			Name:        "admin",
			GuardName:   "web",
			Permissions: allPermissions,
		}
		if err := db.Create(&adminRole).Error; err != nil {
			log.Printf("Warning: failed to create admin role: %v", err)
		}
	}

	// Create billing-clerk role with billing permissions only
	clerkPermissions := []string{
		"view-dashboard",
		"manage-patients",
		"manage-invoices",
		"manage-payments",
	}
	var clerkPerms []entity.Permission
	for _, name := range clerkPermissions {
		for _, p := range allPermissions {
			if p.Name == name {
				clerkPerms = append(clerkPerms, p)
				break
			}
		}
	}

	var clerkRole entity.Role
	if err := db.Where("name = ?", "billing-clerk").First(&clerkRole).Error; err != nil {
		clerkRole = entity.Role{
			Name:        "billing-clerk",
			GuardName:   "web",
			Permissions: clerkPerms,
		}
		if err := db.Create(&clerkRole).Error; err != nil {
			log.Printf("Warning: failed to create billing-clerk role: %v", err)
		}
	}

	// Create accountant role with read-heavy permissions
	accountantPermissions := []string{
		"view-dashboard",
		"manage-payments",
		"view-reports",
	}
	var accountantPerms []entity.Permission
	for _, name := range accountantPermissions {
		for _, p := range allPermissions {
			if p.Name == name {
				accountantPerms = append(accountantPerms, p)
				break
			}
		}
	}

	var accountantRole entity.Role
	if err := db.Where("name = ?", "accountant").First(&accountantRole).Error; err != nil {
		accountantRole = entity.Role{
			Name:        "accountant",
			GuardName:   "web",
			Permissions: accountantPerms,
		}
		if err := db.Create(&accountantRole).Error; err != nil {
			log.Printf("Warning: failed to create accountant role: %v", err)
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				var role entity.Role
				if err := db.Where("name = ?", "admin").First(&role).Error; err == nil {
					if adminName == "" {
						adminName = "Hospital Admin"
					}
					firstName, lastName := adminName, ""
					if idx := strings.IndexByte(adminName, ' '); idx > 0 {
						firstName, lastName = adminName[:idx], adminName[idx+1:]
					}

					admin := entity.User{
						FirstName: firstName,
						LastName:  lastName,
						Email:     adminEmail,
						Password:  string(hashedPassword),
						Roles:     []entity.Role{role},
					}
					if err := db.Create(&admin).Error; err != nil {
						log.Printf("Warning: failed to create admin user: %v", err)
					} else {
						log.Printf("Created admin user: %s", adminEmail)
					}
				}
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
