package migration

import (
	"fmt"

	"gorm.io/gorm"
)

const uniqueNameIndex = "ux_items_name_lower"

// uniqueNameIndexDDL builds the dialect-specific statement for the
// case-insensitive uniqueness index on items.name. MySQL (8.0.13+) requires
// a functional key part in double parentheses and does not accept
// IF NOT EXISTS on CREATE INDEX; the other dialects share one form.
func uniqueNameIndexDDL(dbType string) string {
	if dbType == "mysql" {
		return fmt.Sprintf("CREATE UNIQUE INDEX %s ON items ((LOWER(name)))", uniqueNameIndex)
	}
	return fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s ON items (LOWER(name))", uniqueNameIndex)
}

// ensureUniqueNameIndex creates the index when it is missing. For MySQL the
// idempotency guard is an information_schema lookup instead of IF NOT EXISTS.
func ensureUniqueNameIndex(conn *gorm.DB, dbType string) error {
	if dbType == "mysql" {
		var count int64
		err := conn.Raw(
			`SELECT COUNT(*) FROM information_schema.statistics
			 WHERE table_schema = DATABASE() AND table_name = 'items' AND index_name = ?`,
			uniqueNameIndex,
		).Scan(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
	}
	return conn.Exec(uniqueNameIndexDDL(dbType)).Error
}
