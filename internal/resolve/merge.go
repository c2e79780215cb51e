package resolve

import "github.com/flemzord/peerlens/internal/entity"

// merge fills fields the primary record left absent with values from the
// secondary record. Primary fields always win; the entity type in
// particular is fixed by whichever backend classified the entity first
// and is never overwritten. Provenance is recorded per filled field.
func merge(primary, secondary *entity.Record, secondaryName string) {
	if secondary == nil {
		return
	}

	if primary.DisplayName == "" && secondary.DisplayName != "" {
		primary.DisplayName = secondary.DisplayName
		primary.MarkSource(secondaryName, "display_name")
	}
	if primary.Username == "" && secondary.Username != "" {
		primary.Username = secondary.Username
		primary.MarkSource(secondaryName, "username")
	}
	if primary.Premium == nil && secondary.Premium != nil {
		primary.Premium = secondary.Premium
		primary.MarkSource(secondaryName, "premium")
	}
	if primary.MemberCount == nil && secondary.MemberCount != nil {
		primary.MemberCount = secondary.MemberCount
		primary.MarkSource(secondaryName, "member_count")
	}
	if primary.InviteLink == "" && secondary.InviteLink != "" {
		primary.InviteLink = secondary.InviteLink
		primary.MarkSource(secondaryName, "invite_link")
	}
	if primary.PhotoRef == "" && secondary.PhotoRef != "" {
		primary.PhotoRef = secondary.PhotoRef
		primary.MarkSource(secondaryName, "photo_ref")
	}
	if primary.Presence == "" && secondary.Presence != "" {
		primary.Presence = secondary.Presence
		primary.MarkSource(secondaryName, "presence_status")
	}
	if primary.LanguageCode == "" && secondary.LanguageCode != "" {
		primary.LanguageCode = secondary.LanguageCode
		primary.MarkSource(secondaryName, "language_code")
	}
	if primary.BotFlags == nil && secondary.BotFlags != nil {
		primary.BotFlags = secondary.BotFlags
		primary.MarkSource(secondaryName, "bot_flags")
	}
	if !primary.Verified && secondary.Verified {
		// Verification is a positive assertion; either source may have
		// seen the badge.
		primary.Verified = true
		primary.MarkSource(secondaryName, "verified")
	}
}
