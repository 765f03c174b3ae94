package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Log      LogConfig      `mapstructure:"log"`
}

type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	TrustedProxies  []string      `mapstructure:"trusted_proxies"`
	CookieSecure    bool          `mapstructure:"cookie_secure"`
	MaxResumeBytes  int64         `mapstructure:"max_resume_bytes"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// AdminConfig holds the credentials used by the seed-admin command.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type StorageConfig struct {
	Driver   string      `mapstructure:"driver"`
	LocalDir string      `mapstructure:"local_dir"`
	MinIO    MinIOConfig `mapstructure:"minio"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	Model        string `mapstructure:"model"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var envBindings = map[string]string{
	"http.port":                "HTTP_PORT",
	"http.shutdown_timeout":    "HTTP_SHUTDOWN_TIMEOUT",
	"http.allowed_origins":     "HTTP_ALLOWED_ORIGINS",
	"http.trusted_proxies":     "HTTP_TRUSTED_PROXIES",
	"http.cookie_secure":       "HTTP_COOKIE_SECURE",
	"http.max_resume_bytes":    "HTTP_MAX_RESUME_BYTES",
	"database.host":            "DB_HOST",
	"database.port":            "DB_PORT",
	"database.user":            "DB_USER",
	"database.password":        "DB_PASSWORD",
	"database.dbname":          "DB_NAME",
	"database.sslmode":         "DB_SSLMODE",
	"database.max_open_conns":  "DB_MAX_OPEN_CONNS",
	"database.max_idle_conns":  "DB_MAX_IDLE_CONNS",
	"auth.jwt_secret":          "JWT_SECRET",
	"auth.token_ttl":           "TOKEN_TTL",
	"admin.email":              "ADMIN_EMAIL",
	"admin.password":           "ADMIN_PASSWORD",
	"storage.driver":           "STORAGE_DRIVER",
	"storage.local_dir":        "STORAGE_LOCAL_DIR",
	"storage.minio.endpoint":   "MINIO_ENDPOINT",
	"storage.minio.access_key": "MINIO_ACCESS_KEY",
	"storage.minio.secret_key": "MINIO_SECRET_KEY",
	"storage.minio.bucket":     "MINIO_BUCKET",
	"storage.minio.use_ssl":    "MINIO_USE_SSL",
	"redis.addr":               "REDIS_ADDR",
	"redis.password":           "REDIS_PASSWORD",
	"redis.db":                 "REDIS_DB",
	"llm.gemini_api_key":       "GEMINI_API_KEY",
	"llm.model":                "LLM_MODEL",
	"log.level":                "LOG_LEVEL",
	"log.format":               "LOG_FORMAT",
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(viper.New())
}

// LoadFrom decodes the configuration from v after applying defaults and env bindings.
func LoadFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("http.trusted_proxies", []string{})
	v.SetDefault("http.cookie_secure", false)
	v.SetDefault("http.max_resume_bytes", 5<<20)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "jobboard")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local_dir", "static/resumes")
	v.SetDefault("storage.minio.bucket", "resumes")
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.HTTP.AllowedOrigins = splitList(cfg.HTTP.AllowedOrigins)
	cfg.HTTP.TrustedProxies = splitList(cfg.HTTP.TrustedProxies)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	for _, proxy := range c.HTTP.TrustedProxies {
		if !validProxy(proxy) {
			errs = append(errs, fmt.Errorf("HTTP_TRUSTED_PROXIES: %q is not an IP or CIDR", proxy))
		}
	}
	switch c.Storage.Driver {
	case "local":
	case "minio":
		if c.Storage.MinIO.Endpoint == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT is required for the minio storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}
	return errors.Join(errs...)
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// splitList accepts both a list and a single comma separated env value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, origin := range strings.Split(item, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

func validProxy(s string) bool {
	if strings.Contains(s, "/") {
		_, _, err := net.ParseCIDR(s)
		return err == nil
	}
	return net.ParseIP(s) != nil
}
