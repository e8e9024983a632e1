package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Upload  UploadConfig
	Log     LogConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// StorageConfig holds object-storage backend settings. Namespace is the
// tenancy-level storage namespace used in public object URLs; PublicBase,
// when set, overrides the derived URL host entirely (CDN or MinIO setups).
type StorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	Namespace  string `mapstructure:"namespace"`
	Bucket     string `mapstructure:"bucket"`
	Endpoint   string `mapstructure:"endpoint"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	UseSSL     bool   `mapstructure:"use_ssl"`
	PublicBase string `mapstructure:"public_base"`
}

// UploadConfig holds upload validation and naming settings. The proxied path
// carries file bytes through this server and gets the lower ceiling; the
// presigned path only issues a write capability and allows larger files.
type UploadConfig struct {
	Folder        string        `mapstructure:"folder"`
	MaxProxiedMB  int64         `mapstructure:"max_proxied_mb"`
	MaxDirectMB   int64         `mapstructure:"max_direct_mb"`
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from a .env file (if present) and environment
// variables with the GALERIA_ prefix.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	v := viper.New()
	v.SetEnvPrefix("GALERIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Storage defaults
	v.SetDefault("storage.provider", "s3")
	v.SetDefault("storage.region", "us-ashburn-1")
	v.SetDefault("storage.namespace", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("storage.public_base", "")

	// Upload defaults
	v.SetDefault("upload.folder", "casamento")
	v.SetDefault("upload.max_proxied_mb", 10)
	v.SetDefault("upload.max_direct_mb", 20)
	v.SetDefault("upload.presign_expiry", "15m")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "GALERIA_SERVER_PORT",
		"server.read_timeout":   "GALERIA_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "GALERIA_SERVER_WRITE_TIMEOUT",
		"server.environment":    "GALERIA_SERVER_ENVIRONMENT",
		"storage.provider":      "GALERIA_STORAGE_PROVIDER",
		"storage.region":        "GALERIA_STORAGE_REGION",
		"storage.namespace":     "GALERIA_STORAGE_NAMESPACE",
		"storage.bucket":        "GALERIA_STORAGE_BUCKET",
		"storage.endpoint":      "GALERIA_STORAGE_ENDPOINT",
		"storage.access_key":    "GALERIA_STORAGE_ACCESS_KEY",
		"storage.secret_key":    "GALERIA_STORAGE_SECRET_KEY",
		"storage.use_ssl":       "GALERIA_STORAGE_USE_SSL",
		"storage.public_base":   "GALERIA_STORAGE_PUBLIC_BASE",
		"upload.folder":         "GALERIA_UPLOAD_FOLDER",
		"upload.max_proxied_mb": "GALERIA_UPLOAD_MAX_PROXIED_MB",
		"upload.max_direct_mb":  "GALERIA_UPLOAD_MAX_DIRECT_MB",
		"upload.presign_expiry": "GALERIA_UPLOAD_PRESIGN_EXPIRY",
		"log.level":             "GALERIA_LOG_LEVEL",
		"log.format":            "GALERIA_LOG_FORMAT",
		"cors.allowed_origins":  "GALERIA_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	cfg.Server = ServerConfig{
		Port:         v.GetString("server.port"),
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Storage = StorageConfig{
		Provider:   v.GetString("storage.provider"),
		Region:     v.GetString("storage.region"),
		Namespace:  v.GetString("storage.namespace"),
		Bucket:     v.GetString("storage.bucket"),
		Endpoint:   v.GetString("storage.endpoint"),
		AccessKey:  v.GetString("storage.access_key"),
		SecretKey:  v.GetString("storage.secret_key"),
		UseSSL:     v.GetBool("storage.use_ssl"),
		PublicBase: v.GetString("storage.public_base"),
	}
	cfg.Upload = UploadConfig{
		Folder:        v.GetString("upload.folder"),
		MaxProxiedMB:  v.GetInt64("upload.max_proxied_mb"),
		MaxDirectMB:   v.GetInt64("upload.max_direct_mb"),
		PresignExpiry: v.GetDuration("upload.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
