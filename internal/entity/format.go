package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// notAvailable is the placeholder rendered for unset optional fields.
const notAvailable = "N/A"

// createdLayout renders derived creation dates like "01 August, 2013".
const createdLayout = "02 January, 2006"

// Format renders the record as the display lines for its entity type.
// The output is plain text; the gateway wraps it into HTML.
func Format(r *Record) string {
	switch r.Type {
	case TypeBot:
		return formatBot(r)
	case TypeGroup:
		return formatChat(r, "Group Information", "Members")
	case TypeSupergroup:
		return formatChat(r, "Supergroup Information", "Members")
	case TypeChannel:
		return formatChat(r, "Channel Information", "Subscribers")
	default:
		return formatUser(r)
	}
}

func formatUser(r *Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User Information\n\n")
	fmt.Fprintf(&b, "ID: %d\n", r.ID)
	fmt.Fprintf(&b, "Full Name: %s\n", orNA(r.DisplayName))
	fmt.Fprintf(&b, "Username: %s\n", orNA(r.Username))
	fmt.Fprintf(&b, "Account Created: %s\n", createdOrNA(r))
	fmt.Fprintf(&b, "Account Age: %s\n", orNA(r.AgeDisplay))
	fmt.Fprintf(&b, "Status: %s\n", orNA(r.Presence))
	fmt.Fprintf(&b, "Premium: %s\n", yesNo(r.Premium != nil && *r.Premium))
	fmt.Fprintf(&b, "Verified: %s", yesNo(r.Verified))
	if r.LanguageCode != "" {
		fmt.Fprintf(&b, "\nLanguage: %s", r.LanguageCode)
	}
	return b.String()
}

func formatBot(r *Record) string {
	flags := r.BotFlags
	if flags == nil {
		flags = &BotFlags{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Bot Information\n\n")
	fmt.Fprintf(&b, "ID: %d\n", r.ID)
	fmt.Fprintf(&b, "Username: %s\n", orNA(r.Username))
	fmt.Fprintf(&b, "Full Name: %s\n", orNA(r.DisplayName))
	fmt.Fprintf(&b, "Account Created: %s\n", createdOrNA(r))
	fmt.Fprintf(&b, "Account Age: %s\n", orNA(r.AgeDisplay))
	fmt.Fprintf(&b, "Bot Settings:\n")
	fmt.Fprintf(&b, "- Can Join Groups: %s\n", yesNo(flags.CanJoinGroups))
	fmt.Fprintf(&b, "- Can Read Messages: %s\n", yesNo(flags.CanReadAllMessages))
	fmt.Fprintf(&b, "- Inline Mode: %s\n", yesNo(flags.SupportsInline))
	fmt.Fprintf(&b, "Verified: %s", yesNo(r.Verified))
	return b.String()
}

func formatChat(r *Record, title, countLabel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", title)
	fmt.Fprintf(&b, "ID: %d\n", r.ID)
	fmt.Fprintf(&b, "Title: %s\n", orNA(r.DisplayName))
	fmt.Fprintf(&b, "Username: %s\n", orNA(r.Username))
	fmt.Fprintf(&b, "Privacy: %s\n", privacy(r))
	fmt.Fprintf(&b, "Verified: %s\n", yesNo(r.Verified))
	fmt.Fprintf(&b, "%s: %s", countLabel, countOrNA(r.MemberCount))
	if r.InviteLink != "" {
		fmt.Fprintf(&b, "\nInvite Link: %s", r.InviteLink)
	}
	return b.String()
}

func privacy(r *Record) string {
	if r.Username != "" {
		return "Public"
	}
	return "Private"
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func createdOrNA(r *Record) string {
	if r.CreatedEstimate.IsZero() {
		return notAvailable
	}
	return r.CreatedEstimate.Format(createdLayout)
}

func countOrNA(count *int) string {
	if count == nil {
		return notAvailable
	}
	return GroupDigits(*count)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// GroupDigits renders n with comma thousands separators.
func GroupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
