package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// compositeIndexes back the listing queries; single-column indexes come from
// model tags.
var compositeIndexes = []index{
	// Group thread listing, latest end time first
	{"threads", "idx_threads_group_end_time", "group_id, end_time"},

	// Comment listing in creation order
	{"comments", "idx_comments_thread_created_at", "thread_id, created_at"},
}

// AddIndexes adds the composite indexes that AutoMigrate does not derive
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
