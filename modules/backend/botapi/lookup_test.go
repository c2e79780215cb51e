package botapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flemzord/peerlens/internal/entity"
	"github.com/flemzord/peerlens/internal/query"
	"github.com/flemzord/peerlens/internal/resolve"
)

func newTestBackend(t *testing.T, handler http.Handler) (*Backend, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	b := &Backend{
		config: Config{Token: "TOKEN", APIURL: srv.URL},
		client: NewClient("TOKEN", srv.URL),
		logger: slog.New(slog.DiscardHandler),
	}
	return b, srv.Close
}

func mustClassify(t *testing.T, raw string) query.Query {
	t.Helper()
	q, err := query.Classify(raw)
	if err != nil {
		t.Fatalf("Classify(%q) error: %v", raw, err)
	}
	return q
}

func TestResolveBotAccount(t *testing.T) {
	b, closeSrv := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getChat"):
			writeJSON(t, w, APIResponse[Chat]{OK: true, Result: Chat{
				ID:                    777000,
				Type:                  "private",
				FirstName:             "Example Bot",
				Username:              "example_bot",
				SupportsInlineQueries: true,
			}})
		case strings.HasSuffix(r.URL.Path, "/getUserProfilePhotos"):
			writeJSON(t, w, APIResponse[UserProfilePhotos]{OK: true, Result: UserProfilePhotos{TotalCount: 0}})
		default:
			t.Errorf("unexpected call: %s", r.URL.Path)
		}
	}))
	defer closeSrv()

	rec, err := b.Resolve(context.Background(), mustClassify(t, "777000"))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if rec.Type != entity.TypeBot {
		t.Errorf("Type = %v, want bot (inferred from username suffix)", rec.Type)
	}
	if rec.BotFlags == nil || !rec.BotFlags.SupportsInline {
		t.Error("BotFlags not populated")
	}
	if rec.Username != "@example_bot" {
		t.Errorf("Username = %q, want @example_bot", rec.Username)
	}
	if rec.PhotoRef != "" {
		t.Errorf("PhotoRef = %q, want empty for zero photos", rec.PhotoRef)
	}
	if rec.Sources["id"] != "botapi" {
		t.Errorf("id provenance = %q, want botapi", rec.Sources["id"])
	}
}

func TestResolveUserWithPhoto(t *testing.T) {
	b, closeSrv := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getChat"):
			writeJSON(t, w, APIResponse[Chat]{OK: true, Result: Chat{
				ID:        123456,
				Type:      "private",
				FirstName: "Jane",
				LastName:  "Doe",
				IsPremium: true,
			}})
		case strings.HasSuffix(r.URL.Path, "/getUserProfilePhotos"):
			writeJSON(t, w, APIResponse[UserProfilePhotos]{OK: true, Result: UserProfilePhotos{
				TotalCount: 1,
				Photos: [][]PhotoSize{{
					{FileID: "small", Width: 160, Height: 160},
					{FileID: "big", Width: 640, Height: 640},
				}},
			}})
		case strings.HasSuffix(r.URL.Path, "/getFile"):
			writeJSON(t, w, APIResponse[File]{OK: true, Result: File{FileID: "big", FilePath: "photos/p.jpg"}})
		default:
			t.Errorf("unexpected call: %s", r.URL.Path)
		}
	}))
	defer closeSrv()

	rec, err := b.Resolve(context.Background(), mustClassify(t, "123456"))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if rec.Type != entity.TypeUser {
		t.Errorf("Type = %v, want user", rec.Type)
	}
	if rec.DisplayName != "Jane Doe" {
		t.Errorf("DisplayName = %q", rec.DisplayName)
	}
	if rec.Premium == nil || !*rec.Premium {
		t.Error("Premium flag lost")
	}
	if !strings.HasSuffix(rec.PhotoRef, "/photos/p.jpg") {
		t.Errorf("PhotoRef = %q, want resolved largest photo", rec.PhotoRef)
	}
}

func TestResolveChannelEnrichment(t *testing.T) {
	b, closeSrv := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getChat"):
			writeJSON(t, w, APIResponse[Chat]{OK: true, Result: Chat{
				ID:         -1001234567890,
				Type:       "channel",
				Title:      "News",
				Username:   "news",
				IsVerified: true,
			}})
		case strings.HasSuffix(r.URL.Path, "/getChatMemberCount"):
			writeJSON(t, w, APIResponse[int]{OK: true, Result: 250000})
		case strings.HasSuffix(r.URL.Path, "/exportChatInviteLink"):
			writeJSON(t, w, APIResponse[string]{OK: true, Result: "https://t.me/+xyz"})
		default:
			t.Errorf("unexpected call: %s", r.URL.Path)
		}
	}))
	defer closeSrv()

	rec, err := b.Resolve(context.Background(), mustClassify(t, "-1001234567890"))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if rec.Type != entity.TypeChannel {
		t.Errorf("Type = %v, want channel", rec.Type)
	}
	if !rec.Verified {
		t.Error("Verified flag lost")
	}
	if rec.MemberCount == nil || *rec.MemberCount != 250000 {
		t.Errorf("MemberCount = %v, want 250000", rec.MemberCount)
	}
	if rec.InviteLink != "https://t.me/+xyz" {
		t.Errorf("InviteLink = %q", rec.InviteLink)
	}
}

func TestResolveChatEnrichmentFailuresSwallowed(t *testing.T) {
	b, closeSrv := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getChat"):
			writeJSON(t, w, APIResponse[Chat]{OK: true, Result: Chat{
				ID:    -987654,
				Type:  "group",
				Title: "Friends",
			}})
		case strings.HasSuffix(r.URL.Path, "/getChatMemberCount"):
			writeJSON(t, w, APIResponse[int]{OK: false, ErrorCode: 400, Description: "Bad Request"})
		case strings.HasSuffix(r.URL.Path, "/exportChatInviteLink"):
			// Not an admin: the API refuses, the adapter degrades.
			writeJSON(t, w, APIResponse[string]{OK: false, ErrorCode: 403, Description: "not enough rights"})
		default:
			t.Errorf("unexpected call: %s", r.URL.Path)
		}
	}))
	defer closeSrv()

	rec, err := b.Resolve(context.Background(), mustClassify(t, "-987654"))
	if err != nil {
		t.Fatalf("Resolve() error on best-effort failure: %v", err)
	}
	if rec.MemberCount != nil {
		t.Error("MemberCount should be absent after enrichment failure")
	}
	if rec.InviteLink != "" {
		t.Error("InviteLink should be absent after enrichment failure")
	}
	if rec.DisplayName != "Friends" {
		t.Errorf("DisplayName = %q, primary fields must survive", rec.DisplayName)
	}
}

func TestResolveNotFound(t *testing.T) {
	b, closeSrv := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, APIResponse[Chat]{OK: false, ErrorCode: 400, Description: "Bad Request: chat not found"})
	}))
	defer closeSrv()

	_, err := b.Resolve(context.Background(), mustClassify(t, "999999999"))
	if !errors.Is(err, resolve.ErrNotFound) {
		t.Fatalf("Resolve() = %v, want ErrNotFound", err)
	}
}

func TestResolveBackendError(t *testing.T) {
	b, closeSrv := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, APIResponse[Chat]{OK: false, ErrorCode: 401, Description: "Unauthorized"})
	}))
	defer closeSrv()

	_, err := b.Resolve(context.Background(), mustClassify(t, "1"))
	if !errors.Is(err, resolve.ErrBackend) {
		t.Fatalf("Resolve() = %v, want ErrBackend", err)
	}
	if errors.Is(err, resolve.ErrNotFound) {
		t.Error("generic API error misclassified as not found")
	}
}

func TestIsBotInference(t *testing.T) {
	tests := []struct {
		chat Chat
		want bool
	}{
		{Chat{Username: "example_bot"}, true},
		{Chat{Username: "ExampleBot"}, true},
		{Chat{Username: "example"}, false},
		{Chat{IsBot: true}, true},
		{Chat{}, false},
	}
	for _, tt := range tests {
		if got := isBot(&tt.chat); got != tt.want {
			t.Errorf("isBot(%+v) = %v, want %v", tt.chat, got, tt.want)
		}
	}
}
