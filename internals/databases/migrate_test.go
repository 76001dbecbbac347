package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateFromScratch(t *testing.T) {
	db, err := Open("file::memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, Migrate(db))

	for _, table := range []string{"students", "policy", "orders", "blackout", "menu_images", "payment_receipts"} {
		var n int
		err := db.Raw(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&n).Error
		require.NoError(t, err)
		assert.Equal(t, 1, n, "table %s missing", table)
	}

	// policy singleton seeded with defaults
	var base int
	require.NoError(t, db.Raw(`SELECT base_price FROM policy WHERE id=1`).Scan(&base).Error)
	assert.Equal(t, 9000, base)

	// unique triple enforced
	require.NoError(t, db.Exec(`INSERT INTO students(code, name) VALUES ('S1','a')`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO orders(student_id, date, slot, price, status, created_at)
		 VALUES (1,'2026-03-02','LUNCH',9000,'SELECTED',CURRENT_TIMESTAMP)`).Error)
	err = db.Exec(
		`INSERT INTO orders(student_id, date, slot, price, status, created_at)
		 VALUES (1,'2026-03-02','LUNCH',9000,'SELECTED',CURRENT_TIMESTAMP)`).Error
	assert.Error(t, err)

	var version int
	require.NoError(t, db.Raw(`SELECT MAX(version) FROM schema_migrations`).Scan(&version).Error)
	assert.Equal(t, 3, version)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := Open("file::memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n).Error)
	assert.Equal(t, 3, n)
}
