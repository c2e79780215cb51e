package gateway

import "time"

// Config holds HTTP gateway configuration.
type Config struct {
	Bind            string        `yaml:"bind"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// PhotoDir is the directory served under /static. Defaults to
	// <data_dir>/photos, the same place the session backend writes to.
	PhotoDir string `yaml:"photo_dir"`

	// PhotoTTL is how long downloaded photos are kept before the cleanup
	// job removes them.
	PhotoTTL time.Duration `yaml:"photo_ttl"`

	// CleanupSchedule is the cron expression for the photo cleanup job.
	CleanupSchedule string `yaml:"cleanup_schedule"`
}

// defaults fills zero values with sensible defaults.
func (c *Config) defaults() {
	if c.Bind == "" {
		c.Bind = "127.0.0.1:8080"
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
	if c.PhotoTTL <= 0 {
		c.PhotoTTL = 24 * time.Hour
	}
}
