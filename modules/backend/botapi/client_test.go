package botapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestGetChatNumericIDSentAsInteger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTEST_TOKEN/getChat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		body, _ := io.ReadAll(r.Body)
		// The identifier must be a JSON integer, not a string.
		want := `{"chat_id":777000}`
		if string(body) != want+"\n" && string(body) != want {
			t.Errorf("body = %s, want %s", body, want)
		}

		writeJSON(t, w, APIResponse[Chat]{
			OK: true,
			Result: Chat{
				ID:        777000,
				Type:      "private",
				FirstName: "Telegram",
			},
		})
	}))
	defer srv.Close()

	client := NewClient("TEST_TOKEN", srv.URL)
	chat, err := client.GetChat(context.Background(), int64(777000))
	if err != nil {
		t.Fatalf("GetChat() error: %v", err)
	}
	if chat.ID != 777000 {
		t.Errorf("ID = %d, want 777000", chat.ID)
	}
	if chat.FirstName != "Telegram" {
		t.Errorf("FirstName = %q, want %q", chat.FirstName, "Telegram")
	}
}

func TestGetChatUsernameSentAsString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			ChatID string `json:"chat_id"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("unmarshal request: %v", err)
		}
		if req.ChatID != "@example" {
			t.Errorf("chat_id = %q, want %q", req.ChatID, "@example")
		}

		writeJSON(t, w, APIResponse[Chat]{
			OK:     true,
			Result: Chat{ID: 42, Type: "private", FirstName: "Ex", Username: "example"},
		})
	}))
	defer srv.Close()

	client := NewClient("TOKEN", srv.URL)
	chat, err := client.GetChat(context.Background(), "@example")
	if err != nil {
		t.Fatalf("GetChat() error: %v", err)
	}
	if chat.Username != "example" {
		t.Errorf("Username = %q, want %q", chat.Username, "example")
	}
}

func TestGetChatAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(t, w, APIResponse[Chat]{
			OK:          false,
			ErrorCode:   400,
			Description: "Bad Request: chat not found",
		})
	}))
	defer srv.Close()

	client := NewClient("TOKEN", srv.URL)
	_, err := client.GetChat(context.Background(), int64(1))
	if err == nil {
		t.Fatal("GetChat() expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Code != 400 {
		t.Errorf("Code = %d, want 400", apiErr.Code)
	}
	if apiErr.Description != "Bad Request: chat not found" {
		t.Errorf("Description = %q", apiErr.Description)
	}
}

func TestGetChatMemberCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/getChatMemberCount" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		writeJSON(t, w, APIResponse[int]{OK: true, Result: 54321})
	}))
	defer srv.Close()

	client := NewClient("TOKEN", srv.URL)
	count, err := client.GetChatMemberCount(context.Background(), int64(-1001))
	if err != nil {
		t.Fatalf("GetChatMemberCount() error: %v", err)
	}
	if count != 54321 {
		t.Errorf("count = %d, want 54321", count)
	}
}

func TestExportChatInviteLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, APIResponse[string]{OK: true, Result: "https://t.me/+abc"})
	}))
	defer srv.Close()

	client := NewClient("TOKEN", srv.URL)
	link, err := client.ExportChatInviteLink(context.Background(), int64(-1001))
	if err != nil {
		t.Fatalf("ExportChatInviteLink() error: %v", err)
	}
	if link != "https://t.me/+abc" {
		t.Errorf("link = %q", link)
	}
}

func TestGetFileAndFileURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, APIResponse[File]{
			OK:     true,
			Result: File{FileID: "abc", FilePath: "photos/file_1.jpg"},
		})
	}))
	defer srv.Close()

	client := NewClient("TOKEN", srv.URL)
	file, err := client.GetFile(context.Background(), "abc")
	if err != nil {
		t.Fatalf("GetFile() error: %v", err)
	}

	want := srv.URL + "/file/botTOKEN/photos/file_1.jpg"
	if got := client.FileURL(file.FilePath); got != want {
		t.Errorf("FileURL() = %q, want %q", got, want)
	}
}

func TestDoTransportErrorDoesNotLeakToken(t *testing.T) {
	client := NewClient("SECRET_TOKEN", "http://127.0.0.1:1")
	_, err := client.GetChat(context.Background(), int64(1))
	if err == nil {
		t.Fatal("GetChat() expected transport error")
	}
}

func TestDoContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("TOKEN", srv.URL)
	if _, err := client.GetChat(ctx, int64(1)); err == nil {
		t.Fatal("GetChat() expected error after cancellation")
	}
}
