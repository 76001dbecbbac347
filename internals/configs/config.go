package configs

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	AdminUser     string
	AdminPass     string
	AdminPassHash string
	AdminSecret   string

	TossSecretKey string

	SMSAPIKey    string
	SMSAPISecret string
	SMSSender    string

	DBPath    string
	UploadDir string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using system ENV")
	}

	AdminUser = GetEnv("ADMIN_USER", "admin")
	AdminPass = GetEnv("ADMIN_PASS")
	AdminPassHash = GetEnv("ADMIN_PASS_HASH")
	AdminSecret = GetEnv("ADMIN_SECRET")

	TossSecretKey = GetEnv("TOSS_SECRET_KEY")

	SMSAPIKey = GetEnv("COOLSMS_API_KEY")
	SMSAPISecret = GetEnv("COOLSMS_API_SECRET")
	SMSSender = GetEnv("COOLSMS_SENDER")

	DBPath = GetEnv("DB_PATH", "data.sqlite")
	UploadDir = GetEnv("UPLOAD_DIR", "uploads")

	if AdminSecret == "" {
		log.Println("ADMIN_SECRET not set, admin sessions will not survive restarts")
		AdminSecret = ephemeralSecret()
	}
	if AdminPass == "" && AdminPassHash == "" {
		log.Println("ADMIN_PASS / ADMIN_PASS_HASH not set, admin login disabled")
	}
	if TossSecretKey == "" {
		log.Println("TOSS_SECRET_KEY not set, payment confirm will fail")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func IsProd() bool {
	return GetEnv("APP_ENV", "development") == "production"
}

// per-process only; a stable secret must come from ENV
func ephemeralSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
