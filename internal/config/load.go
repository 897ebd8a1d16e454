package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for every environment variable read by Load.
const EnvPrefix = "SYNAPSE"

// Load configuration from an optional .env file, an optional config.yaml and
// environment variables. Environment variables take precedence over values from
// config files. Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct tags and the rules that span several groups.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch cfg.Session.Backend {
	case SessionBackendPostgres:
		if cfg.Database.URL == "" {
			return errors.New("config validation failed: database.url is required for the postgres session backend")
		}
	case SessionBackendRedis:
		if cfg.Redis.Addr == "" {
			return errors.New("config validation failed: redis.addr is required for the redis session backend")
		}
	}

	if cfg.Generation.Provider == ProviderGemini {
		if cfg.Generation.GeminiAPIKey == "" {
			return errors.New("config validation failed: generation.gemini_api_key is required for the gemini provider")
		}
		if cfg.Generation.ModelName == "" {
			return errors.New("config validation failed: generation.model_name is required for the gemini provider")
		}
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.backend", SessionBackendMemory)
	v.SetDefault("session.key", "auth-storage")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.simulated_delay_ms", 1000)
	v.SetDefault("generation.provider", ProviderSimulated)
	v.SetDefault("generation.delay_ms", 3000)
	v.SetDefault("generation.flashcard_count", 10)
	v.SetDefault("generation.quiz_question_count", 5)
	v.SetDefault("generation.model_name", "gemini-2.0-flash")
	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.stuck_task_age_minutes", 30)
}

// bindEnvs registers keys without defaults so AutomaticEnv picks them up on Unmarshal.
func bindEnvs(v *viper.Viper) {
	for _, key := range []string{
		"database.url",
		"redis.addr",
		"redis.password",
		"auth.jwt_secret",
		"generation.gemini_api_key",
	} {
		_ = v.BindEnv(key)
	}
}
