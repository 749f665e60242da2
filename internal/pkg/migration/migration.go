package migration

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Run applies every pending migration in ascending version order. Each
// migration executes in its own transaction together with its ledger row,
// so a crash mid-way leaves the schema at a recorded version. Re-running is
// a no-op for versions already in the ledger.
func Run(db *gorm.DB) error {
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migration (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL
	)`).Error; err != nil {
		return fmt.Errorf("creating migration ledger: %w", err)
	}

	var applied []int
	if err := db.Table("schema_migration").Order("version").Pluck("version", &applied).Error; err != nil {
		return fmt.Errorf("reading migration ledger: %w", err)
	}
	appliedSet := map[int]bool{}
	for _, v := range applied {
		appliedSet[v] = true
	}

	for _, m := range migrations {
		if appliedSet[m.version] {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, stmt := range m.statements {
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return tx.Exec(
				"INSERT INTO schema_migration (version, applied_at) VALUES (?, CURRENT_TIMESTAMP)",
				m.version,
			).Error
		})
		if err != nil {
			return fmt.Errorf("applying migration %d: %w", m.version, err)
		}
		log.Info().Int("version", m.version).Msg("Applied schema migration")
	}

	return nil
}
