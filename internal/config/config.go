package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"    validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Email    EmailConfig    `mapstructure:"email"    validate:"required"`
	Tasks    TaskConfig     `mapstructure:"tasks"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// BaseURL is the externally visible origin used when building links in
	// outgoing emails (e.g., the password reset link).
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// CookieSecure controls the Secure flag on session and CSRF cookies.
	// Disabled only for local development over plain HTTP.
	CookieSecure bool `mapstructure:"cookie_secure"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// RedisConfig contains the connection settings for the session and
// throttling backend.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// SecretKey signs password-reset tokens. Rotating it invalidates all
	// outstanding tokens.
	SecretKey string `mapstructure:"secret_key" validate:"required,min=32"`

	// SessionTTLMinutes is how long an authenticated session lives.
	SessionTTLMinutes int `mapstructure:"session_ttl_minutes" validate:"required,gt=0"`

	// ResetTokenLifetimeMinutes bounds how long a password-reset token is
	// accepted after issuance.
	ResetTokenLifetimeMinutes int `mapstructure:"reset_token_lifetime_minutes" validate:"required,gt=0"`

	// LoginAttemptLimit and LoginWindowMinutes configure the anonymous login
	// throttle: at most LoginAttemptLimit attempts per client per window.
	LoginAttemptLimit  int `mapstructure:"login_attempt_limit"  validate:"required,gt=0"`
	LoginWindowMinutes int `mapstructure:"login_window_minutes" validate:"required,gt=0"`
}

// EmailConfig contains outgoing email settings.
type EmailConfig struct {
	SendGridAPIKey string `mapstructure:"sendgrid_api_key" validate:"required"`
	FromAddress    string `mapstructure:"from_address"     validate:"required,email"`
	FromName       string `mapstructure:"from_name"        validate:"required"`
}

// TaskConfig contains settings for the background task queue.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"omitempty,gt=0"`
	QueueSize   int `mapstructure:"queue_size"   validate:"omitempty,gt=0"`
}
