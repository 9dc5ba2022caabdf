// internal/database/seed.go
package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stockadoodle/backend/internal/models"
)

// SeedInitialData creates the default users and categories on an empty
// database, mirroring the desktop bootstrap: one user per role plus the
// starter category list. Retailer users get their metrics row up front.
func SeedInitialData(db *gorm.DB) error {
	logrus.Info("Seeding initial data...")

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if userCount == 0 {
		defaultUsers := []struct {
			Username string
			Password string
			Role     models.UserRole
			Email    string
		}{
			{"admin", "admin", models.RoleAdmin, "admin@stockadoodle.com"},
			{"manager", "password", models.RoleManager, "manager@stockadoodle.com"},
			{"retailer", "password", models.RoleRetailer, "retailer@stockadoodle.com"},
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			for _, u := range defaultUsers {
				user := &models.User{
					Username: u.Username,
					Role:     u.Role,
					Email:    u.Email,
					IsActive: true,
				}
				if err := user.SetPassword(u.Password); err != nil {
					return fmt.Errorf("failed to hash password for %s: %w", u.Username, err)
				}
				if err := tx.Create(user).Error; err != nil {
					return fmt.Errorf("failed to create user %s: %w", u.Username, err)
				}

				if u.Role == models.RoleRetailer {
					metrics := &models.RetailerMetrics{RetailerID: user.ID}
					if err := tx.Create(metrics).Error; err != nil {
						return fmt.Errorf("failed to create metrics for %s: %w", u.Username, err)
					}
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		logrus.Infof("Created %d default users", len(defaultUsers))
	}

	var categoryCount int64
	if err := db.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}

	if categoryCount == 0 {
		categories := []string{"Meat", "Seafood", "Pantry Items", "Junk Food", "Pet Food (Wet & Dry)"}
		for _, name := range categories {
			if err := db.Create(&models.Category{Name: name}).Error; err != nil {
				return fmt.Errorf("failed to create category %s: %w", name, err)
			}
		}
		logrus.Infof("Created %d categories", len(categories))
	}

	logrus.Info("Initial data seeding completed")
	return nil
}
