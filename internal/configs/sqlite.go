package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "qa-review-system.com/qa-review-system/internal/models"
)

func NewDatabaseClient(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}

// Migrate creates the schema. Besides AutoMigrate it installs a partial
// unique index so two concurrent claims can never leave an account with two
// in-progress tasks; the transactional check in the task repository is the
// fast path, this index is the enforcement.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Account{},
		&model.ContentLink{},
		&model.QATask{},
		&model.TaskStep{},
		&model.ReferenceVideo{},
	)
	if err != nil {
		return err
	}

	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_qa_tasks_active_account
		 ON qa_tasks(account_id) WHERE status = 'in_progress'`,
	).Error
}
