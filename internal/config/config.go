package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Session    SessionConfig    `mapstructure:"session"    validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	Task       TaskConfig       `mapstructure:"task"       validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port           int      `mapstructure:"port"            validate:"required,gt=0,lt=65536"`
	LogLevel       string   `mapstructure:"log_level"       validate:"required,oneof=debug info warn error"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains the PostgreSQL connection settings.
// The URL is only required when sessions are stored in PostgreSQL.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// RedisConfig contains the Redis connection settings.
// The address is only required when sessions are stored in Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"       validate:"gte=0"`
}

// Session storage backends.
const (
	SessionBackendMemory   = "memory"
	SessionBackendPostgres = "postgres"
	SessionBackendRedis    = "redis"
)

// SessionConfig selects where the authenticated session snapshot is persisted.
type SessionConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=memory postgres redis"`
	// Key is the namespace key the snapshot is stored under.
	Key string `mapstructure:"key" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	// SimulatedDelayMS is how long login and signup pretend to talk to an identity provider.
	SimulatedDelayMS int `mapstructure:"simulated_delay_ms" validate:"gte=0"`
}

// Generation providers.
const (
	ProviderSimulated = "simulated"
	ProviderGemini    = "gemini"
)

// GenerationConfig controls how study content is produced for a material.
type GenerationConfig struct {
	Provider          string `mapstructure:"provider"            validate:"required,oneof=simulated gemini"`
	DelayMS           int    `mapstructure:"delay_ms"            validate:"gte=0"`
	FlashcardCount    int    `mapstructure:"flashcard_count"     validate:"required,gt=0,lte=100"`
	QuizQuestionCount int    `mapstructure:"quiz_question_count" validate:"required,gt=0,lte=50"`
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name"`
}

// TaskConfig contains the background task runner settings.
type TaskConfig struct {
	WorkerCount         int `mapstructure:"worker_count"           validate:"required,gt=0"`
	QueueSize           int `mapstructure:"queue_size"             validate:"required,gt=0"`
	StuckTaskAgeMinutes int `mapstructure:"stuck_task_age_minutes" validate:"required,gt=0"`
}
