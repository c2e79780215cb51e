// Package mtproto implements the session-client lookup backend for
// peerlens. Running as a full user account, it resolves usernames the Bot
// API cannot and supplies presence status and richer chat metadata.
package mtproto

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"gopkg.in/yaml.v3"

	"github.com/flemzord/peerlens/internal/core"
	"github.com/flemzord/peerlens/internal/resolve"
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
	_ core.Stopper      = (*Backend)(nil)
)

// Backend is the session-client backend module. The MTProto connection is
// a single long-lived resource; protocol calls are serialized on it.
type Backend struct {
	config Config
	logger *slog.Logger

	client *telegram.Client
	api    *tg.Client

	// mu serializes protocol calls on the shared connection.
	mu sync.Mutex

	cancel  context.CancelFunc
	runDone chan error
}

// ModuleInfo implements core.Module.
func (m *Backend) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "backend.mtproto",
		New: func() core.Module { return &Backend{} },
	}
}

// Name implements resolve.Backend.
func (m *Backend) Name() string { return "mtproto" }

// Configure implements core.Configurable.
func (m *Backend) Configure(node *yaml.Node) error {
	if err := node.Decode(&m.config); err != nil {
		return fmt.Errorf("mtproto: decode config: %w", err)
	}
	m.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (m *Backend) Provision(ctx *core.AppContext) error {
	m.logger = ctx.Logger
	if m.config.PhotoDir == "" {
		m.config.PhotoDir = filepath.Join(ctx.DataDir, "photos")
	}
	ctx.RegisterService("backend.mtproto", m)
	return nil
}

// Validate implements core.Validator.
func (m *Backend) Validate() error {
	return m.config.validate()
}

// Start implements core.Starter. It imports the Telethon string session,
// connects, and verifies the session is authorized. The connection stays
// warm until Stop().
func (m *Backend) Start() error {
	data, err := session.TelethonSession(m.config.Session)
	if err != nil {
		return fmt.Errorf("mtproto: parse session string: %w", err)
	}

	storage := new(session.StorageMemory)
	loader := session.Loader{Storage: storage}
	if err := loader.Save(context.Background(), data); err != nil {
		return fmt.Errorf("mtproto: store session: %w", err)
	}

	m.client = telegram.NewClient(m.config.AppID, m.config.AppHash, telegram.Options{
		SessionStorage: storage,
	})

	runCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.runDone = make(chan error, 1)
	ready := make(chan struct{})

	go func() {
		m.runDone <- m.client.Run(runCtx, func(ctx context.Context) error {
			status, err := m.client.Auth().Status(ctx)
			if err != nil {
				return fmt.Errorf("mtproto: auth status: %w", err)
			}
			if !status.Authorized {
				return errors.New("mtproto: session is not authorized")
			}

			m.api = m.client.API()
			close(ready)

			// Hold the connection open until shutdown.
			<-ctx.Done()
			return ctx.Err()
		})
	}()

	select {
	case <-ready:
		m.logger.Info("session client connected")
		return nil
	case err := <-m.runDone:
		cancel()
		return fmt.Errorf("mtproto: connect failed: %w", err)
	case <-time.After(m.config.ConnectTimeout):
		cancel()
		return errors.New("mtproto: connect timeout")
	}
}

// Stop implements core.Stopper. It tears down the connection and waits
// for the run loop to exit.
func (m *Backend) Stop(ctx context.Context) error {
	if m.cancel == nil {
		return nil
	}
	m.cancel()

	select {
	case <-m.runDone:
	case <-ctx.Done():
		return ctx.Err()
	}
	m.logger.Info("session client disconnected")
	return nil
}
