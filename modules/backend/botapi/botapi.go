// Package botapi implements the Bot API lookup backend for peerlens.
// It is the authoritative source for numeric ID queries and the
// cross-enrichment source (invite links, member counts) for username
// queries.
package botapi

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flemzord/peerlens/internal/core"
	"github.com/flemzord/peerlens/internal/resolve"
	"gopkg.in/yaml.v3"
)

func init() {
	core.RegisterModule(&Backend{})
}

// Compile-time interface guards.
var (
	_ resolve.Backend   = (*Backend)(nil)
	_ core.Configurable = (*Backend)(nil)
	_ core.Provisioner  = (*Backend)(nil)
	_ core.Validator    = (*Backend)(nil)
	_ core.Starter      = (*Backend)(nil)
)

// Backend is the Bot API backend module.
type Backend struct {
	config Config
	client *Client
	logger *slog.Logger
}

// ModuleInfo implements core.Module.
func (b *Backend) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "backend.botapi",
		New: func() core.Module { return &Backend{} },
	}
}

// Name implements resolve.Backend.
func (b *Backend) Name() string { return "botapi" }

// Configure implements core.Configurable.
func (b *Backend) Configure(node *yaml.Node) error {
	if err := node.Decode(&b.config); err != nil {
		return fmt.Errorf("botapi: decode config: %w", err)
	}
	b.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (b *Backend) Provision(ctx *core.AppContext) error {
	b.logger = ctx.Logger
	b.client = NewClient(b.config.Token, b.config.APIURL)
	ctx.RegisterService("backend.botapi", b)
	return nil
}

// Validate implements core.Validator.
func (b *Backend) Validate() error {
	return b.config.validate()
}

// Start implements core.Starter. It validates the token against getMe so a
// bad credential fails at startup, not on the first lookup.
func (b *Backend) Start() error {
	me, err := b.client.GetMe(context.Background())
	if err != nil {
		return fmt.Errorf("botapi: getMe failed (check token): %w", err)
	}
	b.logger.Info("bot api authenticated", "id", me.ID, "username", me.Username)
	return nil
}
