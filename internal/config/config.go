package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Search   SearchConfig   `mapstructure:"search"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication settings. The JWT secret is shared
// with the identity issuer that signs the bearer tokens this API accepts.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// SearchConfig contains the settings for the optional search index mirror.
// When AppID is empty the mirror is disabled and a no-op index is wired.
type SearchConfig struct {
	AppID     string `mapstructure:"app_id"`
	APIKey    string `mapstructure:"api_key"    validate:"required_with=AppID"`
	IndexName string `mapstructure:"index_name" validate:"required_with=AppID"`
}

// MirrorEnabled reports whether a search index mirror is configured.
func (c SearchConfig) MirrorEnabled() bool {
	return c.AppID != ""
}
