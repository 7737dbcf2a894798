package repository

import "gorm.io/gorm"

// ResetDatabase wipes all scoring and reference data and every non-primary
// account. Only callable by the primary admin, enforced by the caller.
func ResetDatabase(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range []string{
			`DELETE FROM litmus.score_entries`,
			`DELETE FROM litmus.criteria`,
			`DELETE FROM litmus.contestants`,
			`DELETE FROM litmus.judges`,
			`DELETE FROM litmus.competitions`,
			`DELETE FROM litmus.events`,
			`DELETE FROM litmus.users WHERE is_primary = false`,
		} {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
