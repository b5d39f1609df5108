package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env       string
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Security  SecurityConfig
	Mail      MailConfig
	Cookie    CookieConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	Swagger   SwaggerConfig
}

type ServerConfig struct {
	Port    string
	Host    string
	BaseURL string // URL base da API para construir URIs RFC 7807
	AppURL  string // URL pública do front-end, usada nos links de redefinição
}

type DatabaseConfig struct {
	URL         string // connection string completa; tem prioridade sobre os campos abaixo
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int
}

type RedisConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type SecurityConfig struct {
	BcryptCost int
}

type MailConfig struct {
	ResendAPIKey  string
	ResendBaseURL string
	FromEmail     string
	Timeout       time.Duration
}

// Enabled indica se há credenciais para envio real
func (m MailConfig) Enabled() bool {
	return m.ResendAPIKey != "" && m.FromEmail != ""
}

type CookieConfig struct {
	Domain string
	Secure bool
	Path   string
}

type RateLimitConfig struct {
	Auth string // formato ulule: "<limite>-<período>", ex.: "20-M"
}

type LoggingConfig struct {
	Level  string
	Format string // json (padrão) ou text
}

type CORSConfig struct {
	AllowedOrigins string
}

// Origins retorna a lista de origens permitidas
func (c CORSConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

type SwaggerConfig struct {
	Enabled bool
}

const minJWTSecretLength = 32

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "8080")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("APP_URL", "http://localhost:3000")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_TIME", 300)
	v.SetDefault("JWT_EXPIRY", "168h")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("RESEND_BASE_URL", "https://api.resend.com")
	v.SetDefault("MAIL_TIMEOUT", "10s")
	v.SetDefault("COOKIE_PATH", "/")
	v.SetDefault("RATE_LIMIT_AUTH", "20-M")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("SWAGGER_ENABLED", false)
}

// Load carrega as configurações do arquivo .env (opcional) e das variáveis de ambiente
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config, err := fromViper(v)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	jwtExpiry, err := time.ParseDuration(v.GetString("JWT_EXPIRY"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY: %w", err)
	}

	mailTimeout, err := time.ParseDuration(v.GetString("MAIL_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAIL_TIMEOUT: %w", err)
	}

	return &Config{
		Env: v.GetString("ENV"),
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			Host:    v.GetString("HOST"),
			BaseURL: v.GetString("API_BASE_URL"),
			AppURL:  strings.TrimSuffix(v.GetString("APP_URL"), "/"),
		},
		Database: DatabaseConfig{
			URL:         v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSL_MODE"),
			MaxConns:    v.GetInt("DB_MAX_CONNS"),
			MinConns:    v.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: v.GetInt("DB_MAX_IDLE_TIME"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Expiry: jwtExpiry,
		},
		Security: SecurityConfig{
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Mail: MailConfig{
			ResendAPIKey:  v.GetString("RESEND_API_KEY"),
			ResendBaseURL: strings.TrimSuffix(v.GetString("RESEND_BASE_URL"), "/"),
			FromEmail:     v.GetString("FROM_EMAIL"),
			Timeout:       mailTimeout,
		},
		Cookie: CookieConfig{
			Domain: v.GetString("COOKIE_DOMAIN"),
			Secure: v.GetBool("COOKIE_SECURE"),
			Path:   v.GetString("COOKIE_PATH"),
		},
		RateLimit: RateLimitConfig{
			Auth: v.GetString("RATE_LIMIT_AUTH"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		Swagger: SwaggerConfig{
			Enabled: v.GetBool("SWAGGER_ENABLED"),
		},
	}, nil
}

// Validate verifica as configurações obrigatórias
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if c.JWT.Expiry <= 0 {
		return errors.New("JWT_EXPIRY must be positive")
	}
	if c.Database.URL == "" && (c.Database.Host == "" || c.Database.DBName == "") {
		return errors.New("DATABASE_URL or DB_HOST/DB_NAME must be set")
	}
	return nil
}

// IsProduction indica se a aplicação roda em produção
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
