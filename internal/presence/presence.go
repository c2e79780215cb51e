// Package presence buckets a user into a coarse "last seen" estimate when
// no authoritative status is available. The score is an admitted
// approximation: account signals plus ID-derived jitter, nothing measured.
package presence

// Bucket labels. The session backend reuses the matching labels for its
// authoritative statuses so callers cannot tell the sources apart.
const (
	StatusBot       = "Bot"
	StatusRecently  = "Recently online"
	StatusThisWeek  = "Within this week"
	StatusThisMonth = "Within this month"
	StatusLongAgo   = "Long time ago"
)

// Signals are the inputs available to the heuristic.
type Signals struct {
	ID          int64
	HasUsername bool
	Premium     bool
	Bot         bool
}

// Estimate maps the signals to a bucket label. Bots short-circuit to
// StatusBot.
func Estimate(s Signals) string {
	if s.Bot {
		return StatusBot
	}

	score := 0
	if s.HasUsername {
		score += 40
	}
	if s.Premium {
		score += 30
	}

	switch {
	case s.ID > 2_000_000_000:
		score += 20
	case s.ID > 1_000_000_000:
		score += 15
	default:
		score += 5
	}

	// Deterministic jitter so equal-signal accounts do not all land in
	// the same bucket.
	score += int(s.ID % 30)
	if score > 100 {
		score = 100
	}

	switch {
	case score > 70:
		return StatusRecently
	case score > 50:
		return StatusThisWeek
	case score > 30:
		return StatusThisMonth
	default:
		return StatusLongAgo
	}
}
