package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("configuration is nil")
	}

	validate := newValidator()

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	var messages []string
	for _, e := range errs {
		msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", strings.TrimPrefix(e.Namespace(), "GlobalConfig."), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		messages = append(messages, msg)
	}
	return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(messages, "\n  "))
}

func newValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("notifyprovider", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", NotificationProviderSlack, NotificationProviderDiscord:
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("normalizestrategy", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", NormalizeStrategyHostSubstring, NormalizeStrategyProtocolRelative:
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("httpmethod", func(fl validator.FieldLevel) bool {
		switch strings.ToUpper(fl.Field().String()) {
		case "", http.MethodGet, http.MethodHead:
			return true
		default:
			return false
		}
	})

	return validate
}
