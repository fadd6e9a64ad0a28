package database

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Rating{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Info("AutoMigrate completed.")
	return nil
}

// SeedAdmin creates the admin account when there is none yet.
// Nothing happens when email or password is blank.
func SeedAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := db.Where("role = ?", models.RoleAdmin).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	utils.InfoLogger.WithField("email", email).Info("Admin account seeded")
	return nil
}
