package database

import (
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dosirak_backend/internals/configs"
)

var DB *gorm.DB

// Open opens the SQLite store at path. Foreign keys are enforced per
// connection so student deletes cascade to their orders.
func Open(path string) (*gorm.DB, error) {
	dsn := path + "?_foreign_keys=on&_busy_timeout=5000"
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
}

func ConnectDB() {
	db, err := Open(configs.DBPath)
	if err != nil {
		log.Fatalf("failed to open database %s: %v", configs.DBPath, err)
	}
	DB = db
	log.Printf("DB connected (%s)", configs.DBPath)
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	// SQLite has a single writer; one connection avoids SQLITE_BUSY storms.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
}
