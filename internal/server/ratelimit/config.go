package ratelimit

import (
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// NewConfig builds the limiter configuration from a steady request rate per
// second and a burst size. A non-positive rate disables rate limiting.
func NewConfig(rps float64, burst int) *Config {
	if rps <= 0 {
		return &Config{Enabled: false}
	}
	if burst <= 0 {
		burst = int(rps) + 1
	}

	// Express the rate as a per-minute limit so sub-1 rates survive.
	limit := int(rps * 60)
	if limit < 1 {
		limit = 1
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    limit,
		DefaultWindow:   time.Minute,
		DefaultBurst:    burst,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: Requests that fetch remote pages (strictest limits)
		{Path: "/extract", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Tier 2: Whole-profile writes (moderate limits)
		{Path: "/profile", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/profile/import", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},
		{Path: "/profile/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},

		// Tier 3: Engines and reads - handled by default limit
		// Tier 4: Health check (unlimited) - handled by special case in matcher
	}
}
