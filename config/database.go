package config

import (
	"fmt"

	"github.com/kurisushop/KurisuShop/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	if err := MigrateDB(DB); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}

// MigrateDB runs the schema migration, seeds the role table and installs
// the default-address partial unique index. Shared with the test setup,
// which runs the same migration against an in-memory database.
func MigrateDB(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Rol{},
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductTechnicalDetails{},
		&models.Review{},
		&models.StripePay{},
	)
	if err != nil {
		return err
	}

	if err := seedRoles(db); err != nil {
		return err
	}

	return ensureDefaultAddressIndex(db)
}

func seedRoles(db *gorm.DB) error {
	for _, role := range []models.Role{models.RoleClient, models.RoleSeller} {
		var rol models.Rol
		err := db.Where("type = ?", role).First(&rol).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&models.Rol{Type: role}).Error; err != nil {
			return err
		}
	}
	return nil
}

// ensureDefaultAddressIndex installs a partial unique index so the
// single-default-per-user invariant holds even if a write path bypasses
// the clear-then-set transaction.
func ensureDefaultAddressIndex(db *gorm.DB) error {
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_addresses_one_default_per_user
		 ON addresses (user_id) WHERE is_default`,
	).Error
}
