package botapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flemzord/peerlens/internal/entity"
	"github.com/flemzord/peerlens/internal/query"
	"github.com/flemzord/peerlens/internal/resolve"
)

// Resolve implements resolve.Backend. It issues a getChat request and maps
// the result to the canonical record, then best-effort enriches chats with
// member count, invite link, and photo. Enrichment failures degrade to
// absent fields.
func (b *Backend) Resolve(ctx context.Context, q query.Query) (*entity.Record, error) {
	chat, err := b.client.GetChat(ctx, apiIdentifier(q))
	if err != nil {
		return nil, classify(err)
	}

	rec := b.toRecord(chat)

	if rec.Type.IsChat() {
		b.enrichChat(ctx, rec, apiIdentifier(q))
	} else {
		b.enrichAccount(ctx, rec, chat)
	}

	return rec, nil
}

// apiIdentifier converts the classified query to the wire identifier:
// numeric IDs go as JSON integers, usernames keep their @ prefix.
func apiIdentifier(q query.Query) any {
	if q.Kind == query.KindNumericID {
		return q.ID
	}
	return q.Username
}

// classify wraps a client error into the resolution taxonomy. The API
// reports missing entities as "chat not found" / "user not found"
// descriptions.
func classify(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		desc := strings.ToLower(apiErr.Description)
		if strings.Contains(desc, "not found") {
			return fmt.Errorf("%w: %s", resolve.ErrNotFound, apiErr.Description)
		}
		return fmt.Errorf("%w: %s", resolve.ErrBackend, apiErr.Description)
	}
	return fmt.Errorf("%w: %v", resolve.ErrBackend, err)
}

// toRecord maps a getChat result to a canonical record.
func (b *Backend) toRecord(chat *Chat) *entity.Record {
	rec := &entity.Record{
		ID:       chat.ID,
		Verified: chat.IsVerified,
	}

	switch chat.Type {
	case "group":
		rec.Type = entity.TypeGroup
		rec.DisplayName = chat.Title
	case "supergroup":
		rec.Type = entity.TypeSupergroup
		rec.DisplayName = chat.Title
	case "channel":
		rec.Type = entity.TypeChannel
		rec.DisplayName = chat.Title
	default: // "private"
		rec.Type = entity.TypeUser
		rec.DisplayName = strings.TrimSpace(chat.FirstName + " " + chat.LastName)
		rec.LanguageCode = chat.LanguageCode
		if chat.IsPremium {
			premium := true
			rec.Premium = &premium
		}
		if isBot(chat) {
			rec.Type = entity.TypeBot
			rec.BotFlags = &entity.BotFlags{
				CanJoinGroups:      chat.CanJoinGroups,
				CanReadAllMessages: chat.CanReadAllGroupMessages,
				SupportsInline:     chat.SupportsInlineQueries,
			}
		}
	}

	if chat.Username != "" {
		rec.Username = "@" + chat.Username
	}

	rec.MarkSource(b.Name(), "entity_type", "id", "display_name", "verified")
	if rec.Username != "" {
		rec.MarkSource(b.Name(), "username")
	}
	if rec.Premium != nil {
		rec.MarkSource(b.Name(), "premium")
	}
	if rec.BotFlags != nil {
		rec.MarkSource(b.Name(), "bot_flags")
	}
	if rec.LanguageCode != "" {
		rec.MarkSource(b.Name(), "language_code")
	}
	return rec
}

// isBot reports whether a private chat belongs to a bot. getChat does not
// carry an explicit flag for foreign bots, so the @...bot username
// convention (enforced at registration) is used as a fallback.
func isBot(chat *Chat) bool {
	if chat.IsBot {
		return true
	}
	return strings.HasSuffix(strings.ToLower(chat.Username), "bot")
}

// enrichChat adds member count, invite link, and chat photo. All three are
// best-effort: the invite link in particular requires admin rights and its
// absence is expected.
func (b *Backend) enrichChat(ctx context.Context, rec *entity.Record, chatID any) {
	if count, err := b.client.GetChatMemberCount(ctx, chatID); err != nil {
		b.logger.Debug("member count unavailable", "chat", rec.ID, "error", err)
	} else {
		rec.MemberCount = &count
		rec.MarkSource(b.Name(), "member_count")
	}

	if link, err := b.client.ExportChatInviteLink(ctx, chatID); err != nil {
		b.logger.Debug("invite link unavailable", "chat", rec.ID, "error", err)
	} else if link != "" {
		rec.InviteLink = link
		rec.MarkSource(b.Name(), "invite_link")
	}
}

// enrichAccount resolves the largest profile photo of a user or bot to a
// fetchable URL. No photo is not an error.
func (b *Backend) enrichAccount(ctx context.Context, rec *entity.Record, chat *Chat) {
	url, err := b.profilePhotoURL(ctx, chat)
	if err != nil {
		b.logger.Debug("profile photo unavailable", "user", rec.ID, "error", err)
		return
	}
	if url != "" {
		rec.PhotoRef = url
		rec.MarkSource(b.Name(), "photo_ref")
	}
}

// profilePhotoURL picks the newest profile photo's largest size and
// resolves its file path. Returns "" when the account has no photos.
func (b *Backend) profilePhotoURL(ctx context.Context, chat *Chat) (string, error) {
	photos, err := b.client.GetUserProfilePhotos(ctx, chat.ID, 1)
	if err != nil {
		// Fall back to the chat photo reference if getUserProfilePhotos
		// is not applicable (e.g. bots the user has not interacted with).
		if chat.Photo != nil {
			return b.fileURL(ctx, chat.Photo.BigFileID)
		}
		return "", err
	}

	if photos.TotalCount == 0 || len(photos.Photos) == 0 || len(photos.Photos[0]) == 0 {
		return "", nil
	}

	sizes := photos.Photos[0]
	largest := sizes[0]
	for _, s := range sizes[1:] {
		if s.Width*s.Height > largest.Width*largest.Height {
			largest = s
		}
	}
	return b.fileURL(ctx, largest.FileID)
}

func (b *Backend) fileURL(ctx context.Context, fileID string) (string, error) {
	file, err := b.client.GetFile(ctx, fileID)
	if err != nil {
		return "", err
	}
	if file.FilePath == "" {
		return "", nil
	}
	return b.client.FileURL(file.FilePath), nil
}
