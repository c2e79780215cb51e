package mtproto

import (
	"context"
	"fmt"
	"strings"

	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"

	"github.com/flemzord/peerlens/internal/entity"
	"github.com/flemzord/peerlens/internal/query"
	"github.com/flemzord/peerlens/internal/resolve"
)

// Resolve implements resolve.Backend. Only username queries can be
// resolved: MTProto addresses peers by (id, access_hash) pairs, and a bare
// numeric ID carries no access hash. The orchestrator never routes numeric
// primaries here, only username enrichment.
func (m *Backend) Resolve(ctx context.Context, q query.Query) (*entity.Record, error) {
	if q.Kind != query.KindUsername {
		return nil, fmt.Errorf("%w: session client cannot resolve a bare numeric ID", resolve.ErrBackend)
	}
	if m.api == nil {
		return nil, fmt.Errorf("%w: session client not connected", resolve.ErrBackend)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, m.config.CallTimeout)
	defer cancel()

	peer, err := m.api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{
		Username: strings.TrimPrefix(q.Username, "@"),
	})
	if err != nil {
		if tgerr.Is(err, "USERNAME_NOT_OCCUPIED", "USERNAME_INVALID") {
			return nil, fmt.Errorf("%w: username %s not found", resolve.ErrNotFound, q.Username)
		}
		return nil, fmt.Errorf("%w: resolve %s: %v", resolve.ErrBackend, q.Username, err)
	}

	switch p := peer.Peer.(type) {
	case *tg.PeerUser:
		for _, u := range peer.Users {
			if user, ok := u.(*tg.User); ok && user.ID == p.UserID {
				return m.userRecord(ctx, user), nil
			}
		}
	case *tg.PeerChannel:
		for _, c := range peer.Chats {
			if ch, ok := c.(*tg.Channel); ok && ch.ID == p.ChannelID {
				return m.channelRecord(ctx, ch), nil
			}
		}
	case *tg.PeerChat:
		for _, c := range peer.Chats {
			if ch, ok := c.(*tg.Chat); ok && ch.ID == p.ChatID {
				return m.chatRecord(ctx, ch), nil
			}
		}
	}

	return nil, fmt.Errorf("%w: username %s resolved to no usable entity", resolve.ErrNotFound, q.Username)
}

// userRecord maps a resolved user to the canonical record, including the
// authoritative presence status and a best-effort photo download.
func (m *Backend) userRecord(ctx context.Context, u *tg.User) *entity.Record {
	rec := &entity.Record{
		ID:          u.ID,
		DisplayName: strings.TrimSpace(u.FirstName + " " + u.LastName),
		Verified:    u.Verified,
	}
	rec.Type = entity.TypeUser
	if u.Bot {
		rec.Type = entity.TypeBot
		rec.BotFlags = &entity.BotFlags{
			CanJoinGroups:      !u.BotNochats,
			CanReadAllMessages: u.BotChatHistory,
			SupportsInline:     u.BotInlinePlaceholder != "",
		}
		rec.MarkSource(m.Name(), "bot_flags")
	}
	if u.Username != "" {
		rec.Username = "@" + u.Username
	}
	if u.Premium {
		premium := true
		rec.Premium = &premium
		rec.MarkSource(m.Name(), "premium")
	}
	if u.LangCode != "" {
		rec.LanguageCode = u.LangCode
		rec.MarkSource(m.Name(), "language_code")
	}

	// The native status is authoritative; it must survive any later
	// heuristic enrichment.
	if status := translateStatus(u.Status); status != "" && rec.Type == entity.TypeUser {
		rec.Presence = status
		rec.MarkSource(m.Name(), "presence_status")
	}

	rec.MarkSource(m.Name(), "entity_type", "id", "display_name", "verified")
	if rec.Username != "" {
		rec.MarkSource(m.Name(), "username")
	}

	m.attachUserPhoto(ctx, rec, u)
	return rec
}

// channelRecord maps a resolved channel or supergroup, fetching the full
// metadata for participant count and invite link. The canonical ID gets
// the -100 magnitude prefix.
func (m *Backend) channelRecord(ctx context.Context, ch *tg.Channel) *entity.Record {
	rec := &entity.Record{
		ID:          entity.CanonicalChannelID(ch.ID),
		DisplayName: ch.Title,
		Verified:    ch.Verified,
	}
	if ch.Megagroup {
		rec.Type = entity.TypeSupergroup
	} else {
		rec.Type = entity.TypeChannel
	}
	if ch.Username != "" {
		rec.Username = "@" + ch.Username
	}

	rec.MarkSource(m.Name(), "entity_type", "id", "display_name", "verified")
	if rec.Username != "" {
		rec.MarkSource(m.Name(), "username")
	}

	if m.api == nil {
		return rec
	}

	// Full metadata is best-effort enrichment.
	full, err := m.api.ChannelsGetFullChannel(ctx, &tg.InputChannel{
		ChannelID:  ch.ID,
		AccessHash: ch.AccessHash,
	})
	if err != nil {
		m.logger.Debug("full channel metadata unavailable", "channel", ch.ID, "error", err)
	} else if channelFull, ok := full.FullChat.(*tg.ChannelFull); ok {
		count := channelFull.ParticipantsCount
		rec.MemberCount = &count
		rec.MarkSource(m.Name(), "member_count")

		if invite, ok := channelFull.ExportedInvite.(*tg.ChatInviteExported); ok && invite.Link != "" {
			rec.InviteLink = invite.Link
			rec.MarkSource(m.Name(), "invite_link")
		}
	}

	m.attachChannelPhoto(ctx, rec, ch)
	return rec
}

// chatRecord maps a resolved basic group. The canonical ID is the plain
// negation of the raw ID.
func (m *Backend) chatRecord(ctx context.Context, ch *tg.Chat) *entity.Record {
	rec := &entity.Record{
		Type:        entity.TypeGroup,
		ID:          entity.CanonicalGroupID(ch.ID),
		DisplayName: ch.Title,
	}
	if ch.ParticipantsCount > 0 {
		count := ch.ParticipantsCount
		rec.MemberCount = &count
		rec.MarkSource(m.Name(), "member_count")
	}

	rec.MarkSource(m.Name(), "entity_type", "id", "display_name")

	if m.api == nil {
		return rec
	}

	full, err := m.api.MessagesGetFullChat(ctx, ch.ID)
	if err != nil {
		m.logger.Debug("full chat metadata unavailable", "chat", ch.ID, "error", err)
	} else if chatFull, ok := full.FullChat.(*tg.ChatFull); ok {
		if invite, ok := chatFull.ExportedInvite.(*tg.ChatInviteExported); ok && invite.Link != "" {
			rec.InviteLink = invite.Link
			rec.MarkSource(m.Name(), "invite_link")
		}
	}

	return rec
}
