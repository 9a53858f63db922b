package database

import (
	"fmt"

	"gorm.io/gorm"
)

// createIndexes creates database indexes
func createIndexes(db *gorm.DB) error {
	// Index for department dashboards
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_cases_department_status
		ON cases(department, status)
	`).Error; err != nil {
		return fmt.Errorf("failed to create case department index: %w", err)
	}

	// Index for newest-first listing
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_cases_created_at
		ON cases(created_at)
	`).Error; err != nil {
		return fmt.Errorf("failed to create case created_at index: %w", err)
	}

	// Index for case-scoped reminder listing
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_email_reminders_case
		ON email_reminders(case_id)
	`).Error; err != nil {
		return fmt.Errorf("failed to create reminder index: %w", err)
	}

	// Index for department-scoped sub-department listing
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_sub_departments_department
		ON sub_departments(department_id)
	`).Error; err != nil {
		return fmt.Errorf("failed to create sub-department index: %w", err)
	}

	return nil
}
