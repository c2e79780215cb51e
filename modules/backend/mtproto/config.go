package mtproto

import (
	"errors"
	"time"
)

// Config holds the session-client backend configuration. The three
// credentials come from the my.telegram.org application registration plus
// a pre-authorized Telethon-format string session; the backend never
// performs an interactive login.
type Config struct {
	AppID   int    `yaml:"app_id"`
	AppHash string `yaml:"app_hash"`
	Session string `yaml:"session"`

	// PhotoDir is where downloaded profile photos are written. Defaults
	// to <data_dir>/photos, matching the gateway's static directory.
	PhotoDir string `yaml:"photo_dir"`

	// ConnectTimeout bounds the initial connection at Start().
	ConnectTimeout time.Duration `yaml:"connect_timeout"`

	// CallTimeout bounds each protocol call.
	CallTimeout time.Duration `yaml:"call_timeout"`
}

// defaults applies default values to unset fields.
func (c *Config) defaults() {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 30 * time.Second
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 10 * time.Second
	}
}

// validate checks that the required credentials are present.
func (c *Config) validate() error {
	if c.AppID == 0 {
		return errors.New("mtproto: app_id is required (set API_ID)")
	}
	if c.AppHash == "" {
		return errors.New("mtproto: app_hash is required (set API_HASH)")
	}
	if c.Session == "" {
		return errors.New("mtproto: session is required (set SESSION_STRING)")
	}
	return nil
}
