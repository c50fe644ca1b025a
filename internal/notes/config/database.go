package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PostgresConfig содержит настройки подключения к базе данных.
// DatabaseURL, если задан, имеет приоритет над отдельными полями.
type PostgresConfig struct {
	DatabaseURL     string        `yaml:"database_url" env:"DATABASE_URL"`
	Host            string        `yaml:"host" env:"NOTES_POSTGRES_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"NOTES_POSTGRES_PORT" env-default:"5433"`
	User            string        `yaml:"user" env:"NOTES_POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"NOTES_POSTGRES_PASSWORD" env-default:"postgres"`
	Database        string        `yaml:"database" env:"NOTES_POSTGRES_DB" env-default:"notes"`
	MinConn         int           `yaml:"min_conn" env:"NOTES_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int           `yaml:"max_conn" env:"NOTES_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"NOTES_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"NOTES_POSTGRES_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrationsDir   string        `yaml:"migrations_dir" env:"NOTES_MIGRATIONS_DIR" env-default:"migrations/notes"`
	ConnectAttempts int           `yaml:"connect_attempts" env:"NOTES_POSTGRES_CONNECT_ATTEMPTS" env-default:"5"`
}

// GetDSN возвращает строку подключения к Postgres.
func (p *PostgresConfig) GetDSN() string {
	if p.DatabaseURL != "" {
		return p.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	if p.DatabaseURL != "" {
		return p.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Validate проверяет настройки базы данных.
func (p *PostgresConfig) Validate() error {
	hostRequired := validation.When(p.DatabaseURL == "", validation.Required)
	return validation.ValidateStruct(p,
		validation.Field(&p.Host, hostRequired),
		validation.Field(&p.Port, validation.When(p.DatabaseURL == "", validation.Required, validation.Min(1), validation.Max(65535))),
		validation.Field(&p.Database, hostRequired),
		validation.Field(&p.MinConn, validation.Min(0), validation.Max(p.MaxConn)),
		validation.Field(&p.MaxConn, validation.Required, validation.Min(1)),
		validation.Field(&p.MigrationsDir, validation.Required),
		validation.Field(&p.ConnectAttempts, validation.Required, validation.Min(1)),
	)
}
