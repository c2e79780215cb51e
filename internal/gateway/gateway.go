// Package gateway is the HTTP surface of peerlens: the lookup form page,
// the JSON API, static photo files, and the operational endpoints.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/flemzord/peerlens/internal/core"
	"github.com/flemzord/peerlens/internal/cron"
	"github.com/flemzord/peerlens/internal/resolve"
)

func init() {
	core.RegisterModule(&Gateway{})
}

// Gateway is the HTTP gateway module. It is a leaf module — nothing
// imports it.
type Gateway struct {
	config    Config
	appCtx    *core.AppContext
	logger    *slog.Logger
	server    *http.Server
	metrics   *Metrics
	scheduler *cron.Scheduler
	startedAt time.Time

	// Resolved lazily at Start() via service registry.
	resolver *resolve.Resolver
	backends []string
}

// ModuleInfo implements core.Module.
func (g *Gateway) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "gateway.http",
		New: func() core.Module { return &Gateway{} },
	}
}

// Configure implements core.Configurable.
func (g *Gateway) Configure(node *yaml.Node) error {
	if err := node.Decode(&g.config); err != nil {
		return err
	}
	g.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (g *Gateway) Provision(ctx *core.AppContext) error {
	g.appCtx = ctx
	g.logger = ctx.Logger
	g.metrics = &Metrics{}
	if g.config.PhotoDir == "" {
		g.config.PhotoDir = filepath.Join(ctx.DataDir, "photos")
	}
	ctx.RegisterService("gateway.metrics", g.metrics)
	return nil
}

// Validate implements core.Validator.
func (g *Gateway) Validate() error {
	if _, err := net.ResolveTCPAddr("tcp", g.config.Bind); err != nil {
		return errors.New("gateway: invalid bind address: " + g.config.Bind)
	}
	return nil
}

// Start implements core.Starter. It resolves the backend services from
// the registry (lazy binding), builds the resolver, starts the cleanup
// scheduler, and starts the HTTP server.
func (g *Gateway) Start() error {
	botAPI, ok := backendService(g.appCtx, "backend.botapi")
	if !ok {
		return errors.New("gateway: backend.botapi service not registered")
	}
	g.backends = []string{botAPI.Name()}

	// The session backend is optional; username lookups degrade without
	// it.
	session, ok := backendService(g.appCtx, "backend.mtproto")
	if ok {
		g.backends = append(g.backends, session.Name())
	} else {
		g.logger.Warn("session backend not configured, username lookups limited")
	}

	g.resolver = resolve.New(botAPI, session, g.logger)
	g.startedAt = time.Now()

	g.scheduler = cron.NewScheduler(g.logger)
	job := &cron.PhotoCleanupJob{
		Dir:          g.config.PhotoDir,
		MaxAge:       g.config.PhotoTTL,
		Logger:       g.logger,
		ScheduleExpr: g.config.CleanupSchedule,
	}
	if err := g.scheduler.RegisterJob(job); err != nil {
		return errors.New("gateway: register cleanup job: " + err.Error())
	}
	if err := g.scheduler.Start(); err != nil {
		return errors.New("gateway: start scheduler: " + err.Error())
	}

	g.server = &http.Server{
		Addr:         g.config.Bind,
		Handler:      g.buildRouter(),
		ReadTimeout:  g.config.ReadTimeout,
		WriteTimeout: g.config.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", g.config.Bind)
	if err != nil {
		return errors.New("gateway: listen failed: " + err.Error())
	}

	go func() {
		g.logger.Info("gateway listening", "addr", g.config.Bind)
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("gateway serve error", "error", err)
		}
	}()

	return nil
}

// Stop implements core.Stopper. Graceful shutdown with configured timeout.
func (g *Gateway) Stop(ctx context.Context) error {
	if g.scheduler != nil {
		_ = g.scheduler.Stop(ctx)
	}
	if g.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, g.config.ShutdownTimeout)
	defer cancel()

	g.logger.Info("gateway shutting down")
	return g.server.Shutdown(shutdownCtx)
}

// backendService looks up a registered lookup backend. A nil Backend
// interface comes back as ok=false so callers can pass it straight to
// resolve.New.
func backendService(ctx *core.AppContext, name string) (resolve.Backend, bool) {
	svc, ok := ctx.Service(name)
	if !ok {
		return nil, false
	}
	backend, ok := svc.(resolve.Backend)
	return backend, ok
}
