// Package entity defines the canonical merged representation of a Telegram
// entity and its display formatting.
package entity

import "time"

// Type is the entity classification.
type Type string

const (
	TypeUser       Type = "user"
	TypeBot        Type = "bot"
	TypeGroup      Type = "group"
	TypeSupergroup Type = "supergroup"
	TypeChannel    Type = "channel"
)

// IsChat reports whether the type carries chat-only fields
// (member count, invite link).
func (t Type) IsChat() bool {
	switch t {
	case TypeGroup, TypeSupergroup, TypeChannel:
		return true
	}
	return false
}

// BotFlags are the bot capability switches from the Bot API.
type BotFlags struct {
	CanJoinGroups      bool `json:"can_join_groups"`
	CanReadAllMessages bool `json:"can_read_all_messages"`
	SupportsInline     bool `json:"supports_inline"`
}

// Provenance maps a record field name to the backend that supplied it.
type Provenance map[string]string

// Record is the canonical merged lookup result. Optional scalar fields use
// pointers only where the zero value is meaningful (premium, member count);
// empty strings and zero times read as absent everywhere else.
type Record struct {
	Type        Type   `json:"entity_type"`
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	Username    string `json:"username,omitempty"`
	Verified    bool   `json:"verified"`

	// Premium applies to users only.
	Premium *bool `json:"premium,omitempty"`

	// MemberCount and InviteLink apply to chats only.
	MemberCount *int   `json:"member_count,omitempty"`
	InviteLink  string `json:"invite_link,omitempty"`

	// PhotoRef is an opaque reference to a profile photo: a remote URL
	// (Bot API) or a local /static path (session backend).
	PhotoRef string `json:"photo_ref,omitempty"`

	// CreatedEstimate and AgeDisplay are always derived, never
	// authoritative; Telegram does not expose creation timestamps.
	CreatedEstimate time.Time `json:"created_estimate,omitzero"`
	AgeDisplay      string    `json:"age_display,omitempty"`

	// Presence is authoritative when the session backend supplied it,
	// otherwise a heuristic bucket label.
	Presence string `json:"presence_status,omitempty"`

	// LanguageCode is occasionally reported for users.
	LanguageCode string `json:"language_code,omitempty"`

	BotFlags *BotFlags `json:"bot_flags,omitempty"`

	Sources Provenance `json:"source_provenance,omitempty"`
}

// BareUsername returns the username without its @ prefix, or "".
func (r *Record) BareUsername() string {
	if len(r.Username) > 0 && r.Username[0] == '@' {
		return r.Username[1:]
	}
	return r.Username
}

// MarkSource records that the named fields came from the given backend.
func (r *Record) MarkSource(backend string, fields ...string) {
	if r.Sources == nil {
		r.Sources = make(Provenance, len(fields))
	}
	for _, f := range fields {
		r.Sources[f] = backend
	}
}

// CanonicalChannelID converts a raw MTProto channel/supergroup ID to the
// Bot API convention: a -100 magnitude prefix.
func CanonicalChannelID(raw int64) int64 {
	return -(1_000_000_000_000 + raw)
}

// CanonicalGroupID converts a raw MTProto basic-group ID to the Bot API
// convention: plain negation.
func CanonicalGroupID(raw int64) int64 {
	return -raw
}

// RawID strips the canonical sign/prefix encoding, returning the positive
// magnitude a heuristic can work with.
func RawID(id int64) int64 {
	if id >= 0 {
		return id
	}
	id = -id
	if id > 1_000_000_000_000 {
		id -= 1_000_000_000_000
	}
	return id
}
