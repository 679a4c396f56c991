package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	OpenAI    OpenAIConfig
	Translate TranslateConfig
	Document  DocumentConfig
	Storage   StorageConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" default:"localhost"`
	Port           string        `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" default:"postgres"`
	Password       string        `envconfig:"DB_PASSWORD" default:"postgres"`
	Name           string        `envconfig:"DB_NAME" default:"mom_service"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns       int           `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns       int           `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate    bool          `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	MigrationsDir  string        `envconfig:"DB_MIGRATIONS_DIR" default:"migrations"`
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"30s"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// OpenAIConfig holds the grammar-correction model configuration.
// An empty APIKey leaves the corrector unconfigured.
type OpenAIConfig struct {
	APIKey      string        `envconfig:"OPENAI_API_KEY"`
	BaseURL     string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com"`
	Model       string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	MaxTokens   int           `envconfig:"OPENAI_MAX_TOKENS" default:"2000"`
	Temperature float64       `envconfig:"OPENAI_TEMPERATURE" default:"0.3"`
	Timeout     time.Duration `envconfig:"OPENAI_TIMEOUT" default:"60s"`
}

// TranslateConfig holds translation service configuration
type TranslateConfig struct {
	BaseURL    string        `envconfig:"TRANSLATE_BASE_URL" default:"https://translate.googleapis.com"`
	SourceLang string        `envconfig:"TRANSLATE_SOURCE_LANG" default:"gu"`
	TargetLang string        `envconfig:"TRANSLATE_TARGET_LANG" default:"en"`
	Script     string        `envconfig:"TRANSLATE_SCRIPT" default:"Gujarati"`
	Timeout    time.Duration `envconfig:"TRANSLATE_TIMEOUT" default:"30s"`
}

// DocumentConfig holds MOM document generation configuration
type DocumentConfig struct {
	TemplatePath      string        `envconfig:"MOM_TEMPLATE_PATH" default:"templates/mom-template.docx"`
	TempDir           string        `envconfig:"MOM_TEMP_DIR" default:"temp"`
	ConverterCommands []string      `envconfig:"MOM_CONVERTER_COMMANDS" default:"soffice,libreoffice,C:\\Program Files\\LibreOffice\\program\\soffice.exe,C:\\Program Files (x86)\\LibreOffice\\program\\soffice.exe"`
	ConvertTimeout    time.Duration `envconfig:"MOM_CONVERT_TIMEOUT" default:"60s"`
	ImageWidth        int           `envconfig:"MOM_IMAGE_WIDTH" default:"400"`
	ImageHeight       int           `envconfig:"MOM_IMAGE_HEIGHT" default:"300"`
	LockTTL           time.Duration `envconfig:"MOM_GENERATION_LOCK_TTL" default:"2m"`
	WatchTemplate     bool          `envconfig:"MOM_WATCH_TEMPLATE" default:"true"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Enabled         bool          `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string        `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string        `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string        `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string        `envconfig:"STORAGE_BUCKET" default:"mom-documents"`
	UseSSL          bool          `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string        `envconfig:"STORAGE_PUBLIC_URL"`
	URLExpiry       time.Duration `envconfig:"STORAGE_URL_EXPIRY" default:"1h"`
}

// JWTConfig holds JWT configuration. Tokens are issued by the auth service;
// this service only verifies them.
type JWTConfig struct {
	AccessSecret string `envconfig:"JWT_ACCESS_SECRET"`
}

// RateLimitConfig holds limits for the text-processing endpoint
type RateLimitConfig struct {
	ProcessTextPerMinute int           `envconfig:"PROCESS_TEXT_RATE" default:"30"`
	ProcessTextBurst     int           `envconfig:"PROCESS_TEXT_BURST" default:"5"`
	IdleTTL              time.Duration `envconfig:"RATE_LIMIT_IDLE_TTL" default:"10m"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{}

	// Each section is processed without a prefix so keys stay flat (PORT, DB_HOST, ...)
	sections := []interface{}{
		&config.Server,
		&config.Database,
		&config.Redis,
		&config.OpenAI,
		&config.Translate,
		&config.Document,
		&config.Storage,
		&config.JWT,
		&config.RateLimit,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to process config: %w", err)
		}
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Document.TemplatePath == "" {
		return fmt.Errorf("MOM_TEMPLATE_PATH is required")
	}
	if c.Document.TempDir == "" {
		return fmt.Errorf("MOM_TEMP_DIR is required")
	}
	if c.Document.ConvertTimeout <= 0 {
		return fmt.Errorf("MOM_CONVERT_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.RateLimit.ProcessTextPerMinute <= 0 {
		return fmt.Errorf("PROCESS_TEXT_RATE must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
