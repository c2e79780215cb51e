// Package query classifies raw lookup input into a numeric chat/user ID or
// a normalized username.
package query

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidQuery indicates the input was empty or otherwise unusable.
var ErrInvalidQuery = errors.New("query: invalid query")

// Kind distinguishes the two query forms.
type Kind int

const (
	// KindNumericID is a signed numeric chat or user ID.
	KindNumericID Kind = iota

	// KindUsername is a public @username.
	KindUsername
)

// String returns the kind's display name.
func (k Kind) String() string {
	switch k {
	case KindNumericID:
		return "numeric_id"
	case KindUsername:
		return "username"
	default:
		return "unknown"
	}
}

// Query is a classified lookup request.
type Query struct {
	// Raw is the original input, trimmed.
	Raw string

	// Kind selects which of ID / Username is meaningful.
	Kind Kind

	// ID holds the parsed signed ID for KindNumericID.
	ID int64

	// Username holds the normalized username (leading @) for KindUsername.
	Username string
}

// Identifier returns the value to hand to a backend: the decimal ID for
// numeric queries, the @-prefixed username otherwise.
func (q Query) Identifier() string {
	if q.Kind == KindNumericID {
		return strconv.FormatInt(q.ID, 10)
	}
	return q.Username
}

// Classify parses raw input into a Query.
//
// A string that consists of decimal digits after an optional leading "-" is
// a numeric ID, sign preserved. Anything else is a username: a missing "@"
// prefix is added, and a malformed multi-@ input ("@@name", "a@b@name")
// collapses to a single "@" followed by the part after the last "@".
func Classify(raw string) (Query, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Query{}, ErrInvalidQuery
	}

	if isDecimal(strings.TrimPrefix(trimmed, "-")) {
		id, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			// Out-of-range digit strings cannot denote a Telegram ID.
			return Query{}, ErrInvalidQuery
		}
		return Query{Raw: trimmed, Kind: KindNumericID, ID: id}, nil
	}

	username := trimmed
	if idx := strings.LastIndex(username, "@"); idx > 0 || strings.Count(username, "@") > 1 {
		username = username[idx+1:]
	} else {
		username = strings.TrimPrefix(username, "@")
	}
	if username == "" {
		return Query{}, ErrInvalidQuery
	}

	return Query{Raw: trimmed, Kind: KindUsername, Username: "@" + username}, nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
