package resolve

import (
	"context"

	"github.com/flemzord/peerlens/internal/entity"
	"github.com/flemzord/peerlens/internal/query"
)

// Backend is a lookup source. Both adapters (Bot API, session client)
// implement it; the resolver decides which is authoritative per query kind.
//
// Resolve returns a partial record with provenance marked for every field
// the backend supplied. Implementations classify failures by wrapping
// ErrNotFound or ErrBackend. Best-effort enrichment inside an adapter
// (member count, invite link, profile photo) must degrade to absent fields,
// never to an error.
type Backend interface {
	// Name identifies the backend in provenance entries and logs.
	Name() string

	// Resolve looks up the classified query.
	Resolve(ctx context.Context, q query.Query) (*entity.Record, error)
}
