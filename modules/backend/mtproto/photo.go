package mtproto

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/tg"

	"github.com/flemzord/peerlens/internal/entity"
)

// attachUserPhoto downloads the user's current profile photo into the
// photo directory and points the record at its static path. Photo
// download is best-effort; failures leave the record without a photo.
func (m *Backend) attachUserPhoto(ctx context.Context, rec *entity.Record, u *tg.User) {
	photo, ok := u.Photo.(*tg.UserProfilePhoto)
	if !ok {
		return
	}
	peer := &tg.InputPeerUser{UserID: u.ID, AccessHash: u.AccessHash}
	m.downloadPhoto(ctx, rec, peer, photo.PhotoID)
}

// attachChannelPhoto does the same for channels and supergroups.
func (m *Backend) attachChannelPhoto(ctx context.Context, rec *entity.Record, ch *tg.Channel) {
	photo, ok := ch.Photo.(*tg.ChatPhoto)
	if !ok {
		return
	}
	peer := &tg.InputPeerChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash}
	m.downloadPhoto(ctx, rec, peer, photo.PhotoID)
}

func (m *Backend) downloadPhoto(ctx context.Context, rec *entity.Record, peer tg.InputPeerClass, photoID int64) {
	if m.api == nil {
		return
	}
	if err := os.MkdirAll(m.config.PhotoDir, 0o755); err != nil {
		m.logger.Debug("photo dir unavailable", "dir", m.config.PhotoDir, "error", err)
		return
	}

	name := fmt.Sprintf("%d.jpg", rec.ID)
	location := &tg.InputPeerPhotoFileLocation{
		Big:     true,
		Peer:    peer,
		PhotoID: photoID,
	}

	_, err := downloader.NewDownloader().
		Download(m.api, location).
		ToPath(ctx, filepath.Join(m.config.PhotoDir, name))
	if err != nil {
		m.logger.Debug("photo download failed", "entity", rec.ID, "error", err)
		return
	}

	rec.PhotoRef = "/static/" + name
	rec.MarkSource(m.Name(), "photo_ref")
}
