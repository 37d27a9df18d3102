package config

import (
	"strings"

	"github.com/aleister1102/dingrobot/internal/common"
	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return common.NewValidationError("config", cfg, "config cannot be nil")
	}

	validate := validator.New()

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(fl.Field().String())
		switch level {
		case "", "debug", "info", "warn", "error", "fatal", "panic": // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		switch format {
		case "", "console", "text", "json": // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	if err := validate.Struct(cfg); err != nil {
		return common.WrapError(err, "config validation failed")
	}

	return ValidateRobotConfig(&cfg.RobotConfig)
}

// ValidateRobotConfig checks that the robot section identifies a target channel:
// either an access token for URL composition or a pre-built direct URL.
func ValidateRobotConfig(cfg *RobotConfig) error {
	if cfg == nil {
		return common.NewValidationError("robot_config", cfg, "robot config cannot be nil")
	}
	if cfg.AccessToken == "" && cfg.DirectURL == "" {
		return common.NewConfigurationError("robot_config", "access_token", "either access_token or direct_url must be set")
	}
	return nil
}
