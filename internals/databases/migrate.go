package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// A migration runs exactly once, in order, tracked by schema_migrations.
// Statements are still written to be idempotent so a half-applied step can
// be retried safely.
type migration struct {
	Version int
	Name    string
	Run     func(tx *gorm.DB) error
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "initial schema",
		Run: func(tx *gorm.DB) error {
			stmts := []string{
				`CREATE TABLE IF NOT EXISTS students(
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					code TEXT NOT NULL UNIQUE,
					name TEXT NOT NULL,
					phone TEXT,
					parent_phone TEXT,
					allowed_weekdays TEXT,
					start_date TEXT,
					end_date TEXT,
					price_override INTEGER
				)`,
				`CREATE TABLE IF NOT EXISTS policy(
					id INTEGER PRIMARY KEY CHECK (id = 1),
					base_price INTEGER NOT NULL DEFAULT 9000,
					allowed_weekdays TEXT NOT NULL DEFAULT 'MON,TUE,WED,THU,FRI',
					start_date TEXT,
					end_date TEXT
				)`,
				`INSERT OR IGNORE INTO policy(id) VALUES (1)`,
				`CREATE TABLE IF NOT EXISTS orders(
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					student_id INTEGER NOT NULL REFERENCES students(id) ON DELETE CASCADE,
					date TEXT NOT NULL,
					slot TEXT NOT NULL,
					price INTEGER NOT NULL,
					status TEXT NOT NULL,
					created_at DATETIME NOT NULL,
					updated_at DATETIME
				)`,
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_student_date_slot
					ON orders(student_id, date, slot)`,
				`CREATE INDEX IF NOT EXISTS idx_orders_date_slot
					ON orders(date, slot, status)`,
				`CREATE TABLE IF NOT EXISTS blackout(
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					date TEXT NOT NULL,
					slot TEXT NOT NULL
				)`,
				`CREATE TABLE IF NOT EXISTS menu_images(
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					url TEXT NOT NULL,
					uploaded_at DATETIME NOT NULL
				)`,
			}
			for _, s := range stmts {
				if err := tx.Exec(s).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		Version: 2,
		Name:    "policy sms_extra_text",
		Run: func(tx *gorm.DB) error {
			has, err := hasColumn(tx, "policy", "sms_extra_text")
			if err != nil || has {
				return err
			}
			return tx.Exec(`ALTER TABLE policy ADD COLUMN sms_extra_text TEXT`).Error
		},
	},
	{
		Version: 3,
		Name:    "payment receipts",
		Run: func(tx *gorm.DB) error {
			return tx.Exec(`CREATE TABLE IF NOT EXISTS payment_receipts(
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				order_ref TEXT NOT NULL UNIQUE,
				payment_key TEXT NOT NULL,
				amount INTEGER NOT NULL,
				receipt JSON,
				created_at DATETIME NOT NULL
			)`).Error
		},
	},
}

// Migrate applies all pending migrations.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations(
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME NOT NULL
	)`).Error; err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := db.Raw(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).
		Scan(&current).Error; err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Run(tx); err != nil {
				return err
			}
			return tx.Exec(
				`INSERT INTO schema_migrations(version, name, applied_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
				m.Version, m.Name,
			).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		log.Printf("migrated schema to v%d (%s)", m.Version, m.Name)
	}
	return nil
}

func hasColumn(tx *gorm.DB, table, column string) (bool, error) {
	type col struct {
		Name string
	}
	var cols []col
	if err := tx.Raw(fmt.Sprintf(`PRAGMA table_info(%s)`, table)).Scan(&cols).Error; err != nil {
		return false, err
	}
	for _, c := range cols {
		if c.Name == column {
			return true, nil
		}
	}
	return false, nil
}
