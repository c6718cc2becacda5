// Package config loads and validates application configuration.
package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port"        validate:"required,gt=0,lt=65536"`
	LogLevel    string `mapstructure:"log_level"   validate:"required,oneof=debug info warn error"`
	Environment string `mapstructure:"environment" validate:"required,oneof=development production test"`

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string `mapstructure:"cors_origins" validate:"required,min=1"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`

	MaxOpenConns    int `mapstructure:"max_open_conns"    validate:"gte=0"`
	MaxIdleConns    int `mapstructure:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifeMins int `mapstructure:"conn_max_life_mins" validate:"gte=0"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeHours is the access token lifetime. Defaults to 24.
	TokenLifetimeHours int `mapstructure:"token_lifetime_hours" validate:"required,gt=0"`

	// BcryptCost is the bcrypt work factor used for password hashing.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}
