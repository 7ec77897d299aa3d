package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds constraints that AutoMigrate cannot express and
// that the purchase/join protocols rely on as a last line of defence.
func MigrateConstraints(db *gorm.DB) error {
	// At most one VALID ticket per user. The purchase protocol checks this
	// inside its transaction; the partial index closes any remaining race.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_valid_ticket_per_user
		ON tickets (user_id)
		WHERE status = 'VALID';
	`).Error
	if err != nil {
		return err
	}

	// A user appears at most once per conference program.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_user_conference
		ON user_program_items (user_id, conference_id);
	`).Error
	if err != nil {
		return err
	}

	// Day ledger queries scan active types; purchase looks up tickets by user.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_user_status
		ON tickets (user_id, status);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
