package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Store    StoreConfig    `mapstructure:"store"    validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Upload   UploadConfig   `mapstructure:"upload"   validate:"required"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                int    `mapstructure:"port"                  validate:"required,gt=0,lt=65536"`
	LogLevel            string `mapstructure:"log_level"             validate:"required,oneof=debug info warn error"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"  validate:"gte=0"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" validate:"gte=0"`
	// MaxBodyKB caps JSON request bodies. Zero disables the cap.
	MaxBodyKB int `mapstructure:"max_body_kb" validate:"gte=0"`
}

// Store drivers understood by the application.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// StoreConfig selects the record store backend.
type StoreConfig struct {
	// Driver is one of "file", "sqlite" or "postgres".
	Driver string `mapstructure:"driver" validate:"required,oneof=file sqlite postgres"`
	// DataDir holds users.json and tweets.json for the file driver.
	DataDir string `mapstructure:"data_dir" validate:"required_if=Driver file"`
	// SQLitePath is the database file for the sqlite driver.
	SQLitePath string `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
}

// DatabaseConfig contains the connection settings for the postgres driver.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AuthConfig contains password hashing settings.
type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// UploadConfig bounds multipart uploads on the playground routes.
type UploadConfig struct {
	MaxMemoryMB int `mapstructure:"max_memory_mb" validate:"gt=0,lte=1024"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
