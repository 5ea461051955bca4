// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, CORS, and request body size limits.
// AppConfig is where everything specific to Scriptly lives: the MongoDB
// connection, JWT signing, password hashing cost, and the seed admin
// account created on first startup.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// JWT configuration
	JWTSecret string        // Secret for signing bearer tokens (must be strong in production)
	TokenTTL  time.Duration // Bearer token lifetime

	// Password hashing
	BcryptCost int // bcrypt cost factor for password hashes

	// Seed admin bootstrap (created/promoted on startup when set)
	AdminEmail    string
	AdminName     string
	AdminPassword string
}
