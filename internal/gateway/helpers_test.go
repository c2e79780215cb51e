package gateway

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/flemzord/peerlens/internal/entity"
	"github.com/flemzord/peerlens/internal/query"
	"github.com/flemzord/peerlens/internal/resolve"
)

// fakeBackend is a canned lookup backend for handler tests.
type fakeBackend struct {
	name   string
	record *entity.Record
	err    error
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Resolve(_ context.Context, _ query.Query) (*entity.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec := *f.record
	return &rec, nil
}

// newTestGateway builds a started-shaped Gateway around the given
// backends without binding a socket.
func newTestGateway(t *testing.T, botAPI, session resolve.Backend) *Gateway {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	g := &Gateway{
		logger:    logger,
		metrics:   &Metrics{},
		resolver:  resolve.New(botAPI, session, logger),
		backends:  []string{"botapi"},
		startedAt: time.Now(),
	}
	g.config.defaults()
	if session != nil {
		g.backends = append(g.backends, "mtproto")
	}
	return g
}

func mustYAMLNode(t *testing.T, text string) *yaml.Node {
	t.Helper()
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(text), &node); err != nil {
		t.Fatalf("YAML parse: %v", err)
	}
	if len(node.Content) > 0 {
		return node.Content[0]
	}
	return &node
}
