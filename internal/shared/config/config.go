package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// Validation errors.
var (
	ErrMissingAccessKeyID     = errors.New("AWS_ACCESS_KEY_ID is not set")
	ErrMissingSecretAccessKey = errors.New("AWS_SECRET_ACCESS_KEY is not set")
	ErrMissingRegion          = errors.New("AWS_REGION is not set")
	ErrMissingBucket          = errors.New("S3_BUCKET_NAME is not set")
	ErrInvalidDriver          = errors.New("database driver must be one of: mysql, postgres")
	ErrInvalidPickerSource    = errors.New("picker source must be one of: database, objectstore")
)

// Picker sources.
const (
	PickerSourceDatabase    = "database"
	PickerSourceObjectStore = "objectstore"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Wardrobe WardrobeConfig `mapstructure:"wardrobe"`
	Picker   PickerConfig   `mapstructure:"picker"`
	Uploader UploaderConfig `mapstructure:"uploader"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address          string        `mapstructure:"address"`
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	IdleTimeout      time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadBytes   int64         `mapstructure:"max_upload_bytes"`
	UploadRateLimit  int           `mapstructure:"upload_rate_limit"`
	UploadRateWindow time.Duration `mapstructure:"upload_rate_window"`
	CORSOrigins      []string      `mapstructure:"cors_origins"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN returns the database connection string for the configured driver.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Database, c.SSLMode,
		)
		if c.Password != "" {
			dsn += fmt.Sprintf(" password=%s", c.Password)
		}
		return dsn
	}
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	mc.DBName = c.Database
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// RedisConfig holds Redis configuration.
// An empty address disables upload rate limiting.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig holds object storage configuration.
type StorageConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	Bucket          string        `mapstructure:"bucket"`
	UsePathStyle    bool          `mapstructure:"use_path_style"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`
}

// WardrobeConfig holds outfit generation settings.
type WardrobeConfig struct {
	OutfitCategories []string `mapstructure:"outfit_categories"`
}

// PickerConfig selects where random picks are drawn from.
type PickerConfig struct {
	Source string `mapstructure:"source"`
}

// UploaderConfig holds batch uploader settings.
type UploaderConfig struct {
	Folder   string        `mapstructure:"folder"`
	Interval time.Duration `mapstructure:"interval"`
	Category string        `mapstructure:"category"`
	Brand    string        `mapstructure:"brand"`
	Color    string        `mapstructure:"color"`
	MinPrice string        `mapstructure:"min_price"`
	MaxPrice string        `mapstructure:"max_price"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envBindings maps config keys to the plain environment variable names the
// deployment already uses.
var envBindings = map[string]string{
	"storage.access_key_id":     "AWS_ACCESS_KEY_ID",
	"storage.secret_access_key": "AWS_SECRET_ACCESS_KEY",
	"storage.region":            "AWS_REGION",
	"storage.bucket":            "S3_BUCKET_NAME",
	"database.host":             "DB_HOST",
	"database.user":             "DB_USER",
	"database.password":         "DB_PASSWORD",
	"database.database":         "DB_NAME",
	"database.port":             "DB_PORT",
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file path. Empty searches the default paths.
	ConfigFile string
	// EnvFile is a dotenv file whose values fill unset environment variables.
	EnvFile string
}

// Load loads configuration from file and environment.
func Load() (*Config, error) {
	return LoadWithOptions(Options{EnvFile: ".env"})
}

// LoadWithOptions loads configuration using the given sources.
func LoadWithOptions(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := loadDotEnv(opts.EnvFile); err != nil {
			return nil, err
		}
	}

	v := viper.New()

	// Set config file name and paths
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/outfitpicker")
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.ConfigFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("OUTFIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Wardrobe.OutfitCategories = splitList(cfg.Wardrobe.OutfitCategories)
	cfg.Server.CORSOrigins = splitList(cfg.Server.CORSOrigins)

	return &cfg, nil
}

// Validate checks the values the service cannot start without.
func (c *Config) Validate() error {
	if c.Storage.AccessKeyID == "" {
		return ErrMissingAccessKeyID
	}
	if c.Storage.SecretAccessKey == "" {
		return ErrMissingSecretAccessKey
	}
	if c.Storage.Region == "" {
		return ErrMissingRegion
	}
	if c.Storage.Bucket == "" {
		return ErrMissingBucket
	}
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return ErrInvalidDriver
	}
	switch c.Picker.Source {
	case PickerSourceDatabase, PickerSourceObjectStore:
	default:
		return ErrInvalidPickerSource
	}
	return nil
}

// loadDotEnv applies a dotenv file to the process environment without
// overriding variables that are already set. A missing file is ignored.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}

	ev := viper.New()
	ev.SetConfigFile(path)
	ev.SetConfigType("env")
	if err := ev.ReadInConfig(); err != nil {
		return fmt.Errorf("read env file: %w", err)
	}

	for _, key := range ev.AllKeys() {
		name := strings.ToUpper(key)
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := os.Setenv(name, ev.GetString(key)); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	return nil
}

// splitList flattens comma separated entries and trims blanks.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// setDefaults sets default configuration values. Every key needs an entry
// here, even an empty one, or AutomaticEnv never sees it on Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_upload_bytes", 10<<20)
	v.SetDefault("server.upload_rate_limit", 30)
	v.SetDefault("server.upload_rate_window", time.Minute)
	v.SetDefault("server.cors_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "outfits")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 30*time.Minute)

	// Redis defaults
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Storage defaults
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", "us-east-2")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.use_path_style", false)
	v.SetDefault("storage.presign_expiry", 15*time.Minute)
	v.SetDefault("storage.breaker_failures", 5)
	v.SetDefault("storage.breaker_timeout", 30*time.Second)

	// Wardrobe defaults
	v.SetDefault("wardrobe.outfit_categories", []string{"Shirts", "Bottoms", "Shoes"})
	v.SetDefault("picker.source", PickerSourceDatabase)

	// Uploader defaults
	v.SetDefault("uploader.folder", "")
	v.SetDefault("uploader.interval", 2*time.Second)
	v.SetDefault("uploader.category", "Shirts")
	v.SetDefault("uploader.brand", "Unknown")
	v.SetDefault("uploader.color", "Unknown")
	v.SetDefault("uploader.min_price", "10.00")
	v.SetDefault("uploader.max_price", "100.00")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
