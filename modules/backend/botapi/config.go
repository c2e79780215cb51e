package botapi

import (
	"fmt"
	"net/url"
	"regexp"
)

// tokenPattern matches the Telegram bot token format: <digits>:<alphanum+dash>.
var tokenPattern = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]+$`)

// Config holds the Bot API backend configuration.
type Config struct {
	Token  string `yaml:"token"`
	APIURL string `yaml:"api_url"`
}

// defaults applies default values to unset fields.
func (c *Config) defaults() {
	if c.APIURL == "" {
		c.APIURL = "https://api.telegram.org"
	}
}

// validate checks configuration field constraints. Called from
// Backend.Validate after defaults have been applied.
func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("botapi: token is required (set BOT_TOKEN)")
	}
	if !tokenPattern.MatchString(c.Token) {
		return fmt.Errorf("botapi: token format invalid (expected <bot_id>:<hash>)")
	}

	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("botapi: api_url must be a valid http/https URL, got %q", c.APIURL)
	}

	return nil
}
