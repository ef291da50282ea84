package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/zulandar/chalkline/internal/models"
)

// Migrate creates or updates the archive schema.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&models.Submission{}); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}
