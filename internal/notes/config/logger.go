package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/avyukd/bobo-notes/pkg/logger"
)

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"NOTES_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"NOTES_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment получает строку режима в logger environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}

// Validate проверяет режим логгера. Неизвестный уровень логгер сам заменяет на info.
func (l *LoggingConfig) Validate() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.Mode, validation.In("development", "production")),
	)
}
