// Package pagination provides offset-based pagination shared by the list
// endpoints: query parameter parsing, offset math, and the generic response
// envelope.
package pagination

// Config holds pagination settings.
type Config struct {
	DefaultPage  int // Default page number (1-based)
	DefaultLimit int // Default items per page
	MaxLimit     int // Maximum allowed items per page
}

// DefaultConfig returns the default pagination configuration:
// page=1, limit=20, max=100.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}
