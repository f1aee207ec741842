// Package media copies attachment and profile-picture files into the local
// storage tree and tags them with a media kind derived from the extension.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/XZCh722aris/localchat/internal/models"
)

// Storage holds copied files under root: media/images, media/videos,
// media/files and profile_pictures.
type Storage struct {
	root string
}

func NewStorage(root string) *Storage {
	if root == "" {
		root = "."
	}
	return &Storage{root: root}
}

// KindOf classifies a file by extension.
func KindOf(path string) models.MediaKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return models.MediaImage
	case ".mp4", ".avi", ".mov":
		return models.MediaVideo
	default:
		return models.MediaFile
	}
}

// CopyIn copies src into the storage tree under a fresh name and returns the
// stored reference to attach to a message or post.
func (s *Storage) CopyIn(src string) (*models.Media, error) {
	kind := KindOf(src)
	dir := filepath.Join(s.root, "media", string(kind)+"s")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dst := filepath.Join(dir, uuid.NewString()+strings.ToLower(filepath.Ext(src)))
	if err := copyFile(src, dst); err != nil {
		return nil, err
	}
	return &models.Media{Path: dst, Kind: kind}, nil
}

// SaveProfilePicture copies src into the profile-picture dir, keyed by user
// id so a newer picture replaces the older one.
func (s *Storage) SaveProfilePicture(userID int, src string) (string, error) {
	if KindOf(src) != models.MediaImage {
		return "", fmt.Errorf("profile picture must be an image: %s", src)
	}
	dir := filepath.Join(s.root, "profile_pictures")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst := filepath.Join(dir, fmt.Sprintf("profile_%d%s", userID, strings.ToLower(filepath.Ext(src))))
	if err := copyFile(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
