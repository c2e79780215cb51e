// Package resolve coordinates entity lookups across the Bot API and
// session-client backends, reconciling their partial results into one
// canonical record.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flemzord/peerlens/internal/entity"
	"github.com/flemzord/peerlens/internal/estimate"
	"github.com/flemzord/peerlens/internal/presence"
	"github.com/flemzord/peerlens/internal/query"
)

// Resolver routes classified queries to the applicable backends, merges
// their outputs, and derives the estimated fields.
type Resolver struct {
	botAPI  Backend // authoritative for numeric IDs; never nil
	session Backend // authoritative for usernames; nil when unconfigured
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a Resolver. botAPI is required; session may be nil, in which
// case username lookups fail with a configuration-shaped backend error.
func New(botAPI, session Backend, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		botAPI:  botAPI,
		session: session,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Lookup classifies raw input, resolves it, and returns the canonical
// record. Errors wrap the package sentinels for classification by the
// caller.
func (r *Resolver) Lookup(ctx context.Context, raw string) (*entity.Record, error) {
	q, err := query.Classify(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidQuery, raw)
	}

	var rec *entity.Record
	switch q.Kind {
	case query.KindNumericID:
		rec, err = r.resolveNumeric(ctx, q)
	default:
		rec, err = r.resolveUsername(ctx, q)
	}
	if err != nil {
		return nil, err
	}

	r.enrich(rec)
	return rec, nil
}

// resolveNumeric consults the Bot API as the authoritative source. The
// session backend is only an enrichment opportunity, and only once a
// username is known; its failure never fails the lookup.
func (r *Resolver) resolveNumeric(ctx context.Context, q query.Query) (*entity.Record, error) {
	rec, err := r.botAPI.Resolve(ctx, q)
	if err != nil {
		return nil, err
	}

	if r.session != nil && rec.Username != "" {
		enrichQ := query.Query{Raw: rec.Username, Kind: query.KindUsername, Username: rec.Username}
		sec, err := r.session.Resolve(ctx, enrichQ)
		if err != nil {
			r.logger.Debug("session enrichment failed", "query", q.Raw, "error", err)
		} else {
			merge(rec, sec, r.session.Name())
		}
	}

	return rec, nil
}

// resolveUsername consults the session client as the sole authoritative
// source, then cross-enriches from the Bot API (which can, for example,
// export an invite link the session account cannot). If the session
// backend is unavailable the Bot API is tried alone as a fallback: it
// resolves public usernames, just not reliably.
func (r *Resolver) resolveUsername(ctx context.Context, q query.Query) (*entity.Record, error) {
	if r.session == nil {
		rec, err := r.botAPI.Resolve(ctx, q)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}

	rec, primaryErr := r.session.Resolve(ctx, q)
	if primaryErr != nil {
		if errors.Is(primaryErr, ErrNotFound) {
			// Authoritative absence; no point asking the Bot API.
			return nil, primaryErr
		}
		// Primary had a fault: fall back to the Bot API alone.
		rec, err := r.botAPI.Resolve(ctx, q)
		if err != nil {
			r.logger.Warn("both backends failed", "query", q.Raw,
				"session_error", primaryErr, "botapi_error", err)
			return nil, fmt.Errorf("%w: %s", ErrResolutionFailed, mostSpecific(primaryErr, err))
		}
		return rec, nil
	}

	sec, err := r.botAPI.Resolve(ctx, q)
	if err != nil {
		r.logger.Debug("botapi enrichment failed", "query", q.Raw, "error", err)
	} else {
		merge(rec, sec, r.botAPI.Name())
	}

	return rec, nil
}

// enrich derives the estimated fields after merge. The creation estimate
// is computed whenever a usable numeric ID exists; the presence heuristic
// only runs for users when no authoritative status was supplied, and bots
// never get a presence status.
func (r *Resolver) enrich(rec *entity.Record) {
	now := r.now()

	if rec.CreatedEstimate.IsZero() && rec.ID != 0 && !rec.Type.IsChat() {
		created := estimate.CreationAt(entity.RawID(rec.ID), now)
		rec.CreatedEstimate = created
		rec.AgeDisplay = estimate.AgeAt(created, now)
		rec.MarkSource("derived", "created_estimate", "age_display")
	}

	if rec.Presence == "" && rec.Type == entity.TypeUser {
		rec.Presence = presence.Estimate(presence.Signals{
			ID:          rec.ID,
			HasUsername: rec.Username != "",
			Premium:     rec.Premium != nil && *rec.Premium,
			Bot:         false,
		})
		rec.MarkSource("derived", "presence_status")
	}
}

// mostSpecific prefers a "not found" style error message over a generic
// transport error when both backends failed.
func mostSpecific(primary, secondary error) string {
	if errors.Is(secondary, ErrNotFound) {
		return secondary.Error()
	}
	return primary.Error()
}
