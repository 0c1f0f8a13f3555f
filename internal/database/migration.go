package database

import (
	"fmt"

	"github.com/Lais666/API-Biblioteca-Pytest/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Usuario{},
		&models.Livro{},
		&models.Session{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
