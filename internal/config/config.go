package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// Database drivers understood by DatabaseConfig.Driver.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// DatabaseConfig selects and configures the document store backend.
type DatabaseConfig struct {
	Driver                string `mapstructure:"driver"                  validate:"required,oneof=mongo postgres"`
	MongoURI              string `mapstructure:"mongo_uri"               validate:"required_if=Driver mongo,omitempty,url"`
	MongoDatabase         string `mapstructure:"mongo_database"          validate:"required_if=Driver mongo"`
	PostgresURL           string `mapstructure:"postgres_url"            validate:"required_if=Driver postgres,omitempty,url"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
// User and restaurant tokens are signed with separate keys.
type AuthConfig struct {
	UserJWTSecret        string `mapstructure:"user_jwt_secret"        validate:"required,min=32"`
	RestaurantJWTSecret  string `mapstructure:"restaurant_jwt_secret"  validate:"required,min=32,nefield=UserJWTSecret"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=1440"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"required,gte=4,lte=31"`
}

// KafkaConfig configures the optional catalog event publisher.
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers" validate:"required_if=Enabled true"`
	Topic   string   `mapstructure:"topic"   validate:"required_if=Enabled true"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
