// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig owns the
// framework-level settings (ports, TLS, log level, env mode); everything
// specific to the campaign API lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Access tokens
	JWTSecret string        // HMAC secret for signing access tokens
	JWTExpiry time.Duration // Token lifetime

	// Session cookie carrying the access token for browser clients
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name (default: affiliatehub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// CORSAllowedOrigins lists the front-end origins allowed to call the API.
	CORSAllowedOrigins []string

	// LoginRatePerMinute caps login attempts per client IP.
	LoginRatePerMinute int

	// Store call budgets; zero keeps the timeouts package default.
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration

	// SeedDefaultUsers creates the admin/user accounts at startup when missing.
	SeedDefaultUsers bool
}
