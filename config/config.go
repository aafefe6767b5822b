package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Postgres    Postgres
	Telegram    Telegram
	Redis       Redis
	API         API
	Cache       Cache
	Jobs        Jobs
	GoogleDrive GoogleDrive
	Allocation  Allocation
}

type Postgres struct {
	Host            string `env:"PG_HOST"`
	Port            int    `env:"PG_PORT"`
	DbName          string `env:"PG_DB_NAME"`
	Password        string `env:"PG_PASSWORD"`
	User            string `env:"PG_USER"`
	MaxOpenConns    int    `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	ConnMaxLifetime int    `env:"PG_CONN_MAX_LIFETIME" envDefault:"300"`
	MaxIdleConns    int    `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxIdleTime int    `env:"PG_CONN_MAX_IDLE_TIME" envDefault:"60"`
	MigrationDir    string `env:"PG_MIGRATION_DIR" envDefault:"./migrations"`
}

type Telegram struct {
	Token      string        `env:"TELEGRAM_TOKEN"`
	UpdTimeout time.Duration `env:"TELEGRAM_UPD_TIMEOUT" envDefault:"10s"`
}

type Redis struct {
	Host     string `env:"REDIS_HOST"`
	Port     int    `env:"REDIS_PORT"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type API struct {
	Debug   bool          `env:"API_DEBUG" envDefault:"false"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	MoexApi MoexApi
}

type MoexApi struct {
	Url string `env:"MOEX_API_URL" envDefault:"https://iss.moex.com"`
}

type Cache struct {
	SplitsExpiration   time.Duration `env:"CACHE_SPLITS_EXPIRATION" envDefault:"24h"`
	OpenLotsExpiration time.Duration `env:"CACHE_OPEN_LOTS_EXPIRATION" envDefault:"10m"`
	SessionExpiration  time.Duration `env:"SESSION_EXPIRATION" envDefault:"720h"`
}

type Jobs struct {
	SyncSplitsInterval     time.Duration `env:"SYNC_SPLITS_JOB_INTERVAL" envDefault:"12h"`
	CleanupReportsInterval time.Duration `env:"CLEANUP_REPORTS_JOB_INTERVAL" envDefault:"1h"`
}

type GoogleDrive struct {
	// empty disables uploading, reports are sent to the chat directly
	CredentialsFile string        `env:"GOOGLE_DRIVE_CREDENTIALS_FILE" envDefault:""`
	FileTTL         time.Duration `env:"GOOGLE_DRIVE_FILE_TTL" envDefault:"24h"`
}

type Allocation struct {
	DefaultStrategy string        `env:"DEFAULT_STRATEGY" envDefault:"fifo"`
	LockTTL         time.Duration `env:"LOCK_TTL" envDefault:"30s"`
	LockWait        time.Duration `env:"LOCK_WAIT" envDefault:"5s"`
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg, err := Load()
	if err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}

func Load() (*Config, error) {
	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, err
	}

	return cfg, nil
}
