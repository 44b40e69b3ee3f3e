package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/yeremiapane/pos-till/models"
	"github.com/yeremiapane/pos-till/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Backend BackendConfig
	Poll    PollConfig
	Guard   GuardConfig
}

type AppConfig struct {
	Port       string
	GinMode    string
	LogLevel   string
	CORSOrigin string
}

type DBConfig struct {
	Driver string
	DSN    string
}

type BackendConfig struct {
	// BaseURL dipakai kalau QR setup belum menyimpan pos_api_url
	BaseURL string
	Timeout time.Duration
}

type PollConfig struct {
	Kitchen   time.Duration
	Warehouse time.Duration
	Dashboard time.Duration
}

type GuardConfig struct {
	ConfirmTTL       time.Duration
	PinRatePerMinute int
	RequestsPerSec   int
}

func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "till.db")
	v.SetDefault("POS_API_URL", "")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("KITCHEN_POLL_INTERVAL", "7s")
	v.SetDefault("WAREHOUSE_POLL_INTERVAL", "10s")
	v.SetDefault("DASHBOARD_POLL_INTERVAL", "10s")
	v.SetDefault("CONFIRM_TTL", "2m")
	v.SetDefault("PIN_RATE_PER_MINUTE", 5)
	v.SetDefault("RATE_LIMIT_PER_SECOND", 50)

	return &Config{
		App: AppConfig{
			Port:       v.GetString("APP_PORT"),
			GinMode:    v.GetString("GIN_MODE"),
			LogLevel:   v.GetString("LOG_LEVEL"),
			CORSOrigin: v.GetString("CORS_ORIGIN"),
		},
		DB: DBConfig{
			Driver: strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:    v.GetString("DB_DSN"),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(v.GetString("POS_API_URL"), "/"),
			Timeout: v.GetDuration("HTTP_TIMEOUT"),
		},
		Poll: PollConfig{
			Kitchen:   v.GetDuration("KITCHEN_POLL_INTERVAL"),
			Warehouse: v.GetDuration("WAREHOUSE_POLL_INTERVAL"),
			Dashboard: v.GetDuration("DASHBOARD_POLL_INTERVAL"),
		},
		Guard: GuardConfig{
			ConfirmTTL:       v.GetDuration("CONFIRM_TTL"),
			PinRatePerMinute: v.GetInt("PIN_RATE_PER_MINUTE"),
			RequestsPerSec:   v.GetInt("RATE_LIMIT_PER_SECOND"),
		},
	}
}

// InitDB membuka local store (sqlite default, mysql untuk till yang berbagi server)
// dan menjalankan AutoMigrate tabel settings.
func InitDB(cfg DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}

	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		return nil, fmt.Errorf("migrate settings: %w", err)
	}
	utils.InfoLogger.Printf("Local store ready (driver=%s)", cfg.Driver)
	return db, nil
}
