package config

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// GRPCConfig конфигурация gRPC сервера проверки здоровья.
type GRPCConfig struct {
	Enabled bool   `yaml:"enabled" env:"NOTES_GRPC_ENABLED" env-default:"true"`
	Host    string `yaml:"host" env:"NOTES_GRPC_HOST" env-default:"0.0.0.0"`
	Port    int    `yaml:"port" env:"NOTES_GRPC_PORT" env-default:"50053"`
}

// GetAddress возвращает адрес для gRPC сервера.
func (g *GRPCConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}

// Validate проверяет порт, если сервер включен.
func (g *GRPCConfig) Validate() error {
	return validation.ValidateStruct(g,
		validation.Field(&g.Port, validation.When(g.Enabled, validation.Required, validation.Min(1), validation.Max(65535))),
	)
}
