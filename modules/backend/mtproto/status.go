package mtproto

import (
	"time"

	"github.com/gotd/td/tg"

	"github.com/flemzord/peerlens/internal/presence"
)

const lastSeenLayout = "02 Jan 2006 15:04 MST"

// translateStatus maps a native user status to a display label. The
// coarse-grained classes reuse the heuristic bucket labels so callers
// render one vocabulary either way. An empty result means no status was
// reported.
func translateStatus(status tg.UserStatusClass) string {
	switch s := status.(type) {
	case *tg.UserStatusOnline:
		return "Online"
	case *tg.UserStatusOffline:
		return "Last seen " + timeFromUnix(s.WasOnline).Format(lastSeenLayout)
	case *tg.UserStatusRecently:
		return presence.StatusRecently
	case *tg.UserStatusLastWeek:
		return presence.StatusThisWeek
	case *tg.UserStatusLastMonth:
		return presence.StatusThisMonth
	default:
		return ""
	}
}

func timeFromUnix(sec int) time.Time {
	return time.Unix(int64(sec), 0).UTC()
}
