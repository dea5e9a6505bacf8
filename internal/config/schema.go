package config

import "time"

// Config is the top-level bookctl configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	UI     UIConfig     `mapstructure:"ui" yaml:"ui"`
}

// ServerConfig holds the connection settings for the book-library server.
type ServerConfig struct {
	URL            string `mapstructure:"url" yaml:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// UIConfig holds presentation preferences. DarkMode is persisted on every
// toggle; CompactWidth is the terminal width below which views switch to
// their narrow layout.
type UIConfig struct {
	DarkMode     bool `mapstructure:"dark_mode" yaml:"dark_mode"`
	CompactWidth int  `mapstructure:"compact_width" yaml:"compact_width"`
}

// Timeout returns the server timeout as a duration.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Compact reports whether the given terminal width should use the narrow
// layout.
func (u UIConfig) Compact(width int) bool {
	threshold := u.CompactWidth
	if threshold <= 0 {
		threshold = defaultCompactWidth
	}
	return width > 0 && width < threshold
}
