package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Wildcard-origin несовместим с AllowCredentials в CORS.
const (
	wildcardOrigin    = "*"
	ErrWildcardOrigin = "wildcard origin is not allowed with credentials"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host           string        `yaml:"host" env:"NOTES_HTTP_HOST" env-default:"0.0.0.0"`
	Port           int           `yaml:"port" env:"NOTES_HTTP_PORT" env-default:"8000"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"NOTES_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"NOTES_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	FrontendOrigin string        `yaml:"frontend_origin" env:"FRONTEND_ORIGIN" env-default:"http://localhost:3000"`
	ExtraOrigins   []string      `yaml:"extra_origins" env:"NOTES_HTTP_EXTRA_ORIGINS" env-default:"http://localhost:8000" env-separator:","`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AllowedOrigins возвращает origin'ы для CORS без пустых значений и повторов.
func (c *HTTPConfig) AllowedOrigins() []string {
	origins := make([]string, 0, len(c.ExtraOrigins)+1)
	seen := make(map[string]struct{}, len(c.ExtraOrigins)+1)
	for _, origin := range append([]string{c.FrontendOrigin}, c.ExtraOrigins...) {
		if origin == "" {
			continue
		}
		if _, ok := seen[origin]; ok {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}

// Validate проверяет настройки HTTP сервера.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.FrontendOrigin, validation.Required, validation.NotIn(wildcardOrigin).Error(ErrWildcardOrigin)),
		validation.Field(&c.ExtraOrigins, validation.Each(validation.NotIn(wildcardOrigin).Error(ErrWildcardOrigin))),
		validation.Field(&c.ReadTimeout, validation.Required),
		validation.Field(&c.WriteTimeout, validation.Required),
	)
}
