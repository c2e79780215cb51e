package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// requestTimeout bounds every Bot API call. This is part of the
	// adapter's contract: a slow backend fails the call, it is never
	// retried.
	requestTimeout = 10 * time.Second

	maxResponseBytes = 10 << 20 // prevent unbounded reads from API responses
)

// Client is a thin HTTP wrapper around the Telegram Bot API.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Bot API client.
func NewClient(token, baseURL string) *Client {
	return &Client{
		token:   token,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// do sends a JSON POST request to the given Bot API method and decodes the
// response. Failures are reported immediately; there is no retry.
func do[T any](ctx context.Context, c *Client, method string, payload any) (*T, error) {
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("botapi: marshal %s request: %w", method, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("botapi: create %s request: %w", method, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Wrap without the raw error text in the message to avoid leaking
		// the token-bearing URL. The original error is still available
		// via Unwrap.
		return nil, fmt.Errorf("botapi: %s request failed: %w", method, err)
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("botapi: read %s response: %w", method, err)
	}

	var apiResp APIResponse[T]
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("botapi: decode %s response: %w", method, err)
	}

	if !apiResp.OK {
		return nil, &APIError{
			Code:        apiResp.ErrorCode,
			Description: apiResp.Description,
		}
	}

	return &apiResp.Result, nil
}

// getChatRequest is the request body for the getChat and
// getChatMemberCount methods. ChatID is an int64 for numeric identifiers
// and an @-prefixed string for usernames; the API distinguishes by JSON
// type.
type getChatRequest struct {
	ChatID any `json:"chat_id"`
}

// getUserProfilePhotosRequest is the request body for getUserProfilePhotos.
type getUserProfilePhotosRequest struct {
	UserID int64 `json:"user_id"`
	Limit  int   `json:"limit,omitempty"`
}

// getFileRequest is the request body for the getFile method.
type getFileRequest struct {
	FileID string `json:"file_id"`
}

// GetChat fetches information about a chat, user, or channel.
func (c *Client) GetChat(ctx context.Context, chatID any) (*Chat, error) {
	return do[Chat](ctx, c, "getChat", getChatRequest{ChatID: chatID})
}

// GetChatMemberCount returns the number of members in a chat.
func (c *Client) GetChatMemberCount(ctx context.Context, chatID any) (int, error) {
	count, err := do[int](ctx, c, "getChatMemberCount", getChatRequest{ChatID: chatID})
	if err != nil {
		return 0, err
	}
	return *count, nil
}

// ExportChatInviteLink generates a new primary invite link for a chat.
// Requires the bot to be an admin of the chat.
func (c *Client) ExportChatInviteLink(ctx context.Context, chatID any) (string, error) {
	link, err := do[string](ctx, c, "exportChatInviteLink", getChatRequest{ChatID: chatID})
	if err != nil {
		return "", err
	}
	return *link, nil
}

// GetUserProfilePhotos returns a user's profile photos, newest first.
func (c *Client) GetUserProfilePhotos(ctx context.Context, userID int64, limit int) (*UserProfilePhotos, error) {
	return do[UserProfilePhotos](ctx, c, "getUserProfilePhotos", getUserProfilePhotosRequest{
		UserID: userID,
		Limit:  limit,
	})
}

// GetFile retrieves basic info about a file and prepares it for downloading.
func (c *Client) GetFile(ctx context.Context, fileID string) (*File, error) {
	return do[File](ctx, c, "getFile", getFileRequest{FileID: fileID})
}

// GetMe returns the bot's own user information.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	return do[User](ctx, c, "getMe", nil)
}

// FileURL returns the download URL for a file path returned by GetFile.
func (c *Client) FileURL(filePath string) string {
	return fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, filePath)
}
