package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/usecase/outcome"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags first, then rules that span sections
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			problems := make([]string, 0, len(fieldErrors))
			for _, fe := range fieldErrors {
				problems = append(problems, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := outcome.ParsePolicy(cfg.Game.WinProbability, cfg.Game.PayoutMultiplier); err != nil {
		return fmt.Errorf("invalid configuration: game: %w", err)
	}

	switch cfg.Bus.Kind {
	case "redis":
		if cfg.Bus.Redis.Addr == "" {
			return errors.New("invalid configuration: bus.redis.addr is required when bus.kind is redis")
		}
	case "webhook":
		if cfg.Bus.Webhook.URL == "" {
			return errors.New("invalid configuration: bus.webhook.url is required when bus.kind is webhook")
		}
	case "memory":
		// Nothing else drains the in-process bus
		if cfg.Dispatcher.Enabled && !cfg.Consumer.Enabled {
			return errors.New("invalid configuration: consumer.enabled is required when bus.kind is memory")
		}
	}

	if cfg.Database.Driver == "memory" && cfg.Environment == Production {
		return errors.New("invalid configuration: the memory store is not durable and cannot run in production")
	}
	return nil
}
