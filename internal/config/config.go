package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all the configuration for the application.
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer `yaml:"http_server"`
	Database   `yaml:"database"`
	Auth       `yaml:"auth"`
	Listing    `yaml:"listing"`
	Gate       `yaml:"gate"`
	Sentry     `yaml:"sentry"`
}

// HTTPServer holds HTTP server specific configuration.
type HTTPServer struct {
	Port         int    `yaml:"port" env:"HTTP_SERVER_PORT" env-default:"8080"`
	ReadTimeout  string `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout string `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  string `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Database holds PostgreSQL connection configuration.
type Database struct {
	Host            string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password        string `yaml:"password" env:"DB_PASSWORD" env-default:"postgres"`
	DBName          string `yaml:"dbname" env:"DB_NAME" env-default:"linkhub"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	Timezone        string `yaml:"timezone" env:"DB_TIMEZONE" env-default:"UTC"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"50"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
	SeedData        bool   `yaml:"seed_data" env:"DB_SEED_DATA" env-default:"true"`
}

// Auth holds JWT configuration.
type Auth struct {
	JWTSecret            string `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"change-me-in-production"`
	AccessTokenDuration  string `yaml:"access_token_duration" env:"ACCESS_TOKEN_DURATION" env-default:"15m"`
	RefreshTokenDuration string `yaml:"refresh_token_duration" env:"REFRESH_TOKEN_DURATION" env-default:"168h"`
	Issuer               string `yaml:"issuer" env:"JWT_ISSUER" env-default:"LinkHub-Backend"`
}

// Listing holds link listing configuration. Accumulate controls whether
// "load more" appends to the visible rows or replaces them.
type Listing struct {
	PageSize   int  `yaml:"page_size" env:"LISTING_PAGE_SIZE" env-default:"20"`
	Accumulate bool `yaml:"accumulate" env:"LISTING_ACCUMULATE" env-default:"false"`
}

// Gate holds first-click gate configuration. Strategy is either
// "redirect" (divert the first click to InterstitialURL) or "modal"
// (return the ad payload for an in-page modal).
type Gate struct {
	Strategy        string `yaml:"strategy" env:"GATE_STRATEGY" env-default:"redirect"`
	InterstitialURL string `yaml:"interstitial_url" env:"GATE_INTERSTITIAL_URL" env-default:"https://www.effectiveratecpm.com/bugtjp9w1x?key=8769f4085754840d1b068ff40d6e9bc5"`
	AdKey           string `yaml:"ad_key" env:"GATE_AD_KEY" env-default:"a5b8480b2cf2c526c693f2bcb282b8f8"`
	AdScriptURL     string `yaml:"ad_script_url" env:"GATE_AD_SCRIPT_URL" env-default:"//www.highperformanceformat.com/a5b8480b2cf2c526c693f2bcb282b8f8/invoke.js"`
}

// Sentry holds error reporting configuration. Empty DSN disables it.
type Sentry struct {
	DSN string `yaml:"dsn" env:"SENTRY_DSN" env-default:""`
}

// MustLoad loads the application configuration.
func MustLoad() *Config {
	// Try to load .env file (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	var cfg Config

	// Check if config file path is specified
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/local.yml" // default path
	}

	// Try to load config file
	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
	} else {
		// If config file doesn't exist, use environment variables only
		log.Println("Config file not found, using environment variables only")
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err)
		}
	}

	return &cfg
}
