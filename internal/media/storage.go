// Package media stores uploaded files below the media root and turns stored
// paths into public URLs.
package media

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotImage is returned when an upload cannot be decoded as an image.
var ErrNotImage = errors.New("upload a valid image: the file is either not an image or a corrupted image")

type Storage struct {
	Root string
	URL  string
}

func NewStorage(root, url string) *Storage {
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return &Storage{Root: root, URL: url}
}

// SaveImage validates r as an image and writes it to dir under a fresh name
// that keeps the original extension. It returns the media-relative path.
func (s *Storage) SaveImage(dir, filename string, r io.ReadSeeker) (string, error) {
	if _, _, err := image.DecodeConfig(r); err != nil {
		return "", ErrNotImage
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	name := path.Join(dir, uuid.NewString()+ext)
	full := filepath.Join(s.Root, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)

	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", err
	}

	return name, nil
}

// Delete removes a stored file. Missing files and files outside the root are
// ignored; the shared default image is never removed.
func (s *Storage) Delete(name, keep string) error {
	if name == "" || name == keep || !s.contains(name) {
		return nil
	}

	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(name)))

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

// PublicURL returns the URL path of a stored file.
func (s *Storage) PublicURL(name string) string {
	if name == "" {
		return ""
	}
	return s.URL + strings.TrimPrefix(name, "/")
}

// AbsoluteURL prefixes PublicURL with scheme and host, unless the media URL
// is already absolute.
func (s *Storage) AbsoluteURL(scheme, host, name string) string {
	u := s.PublicURL(name)

	if u == "" || strings.Contains(s.URL, "://") || host == "" {
		return u
	}

	return scheme + "://" + host + u
}

// LocalPrefix returns the route prefix under which files are served from
// Root. It reports false when the media URL points at another host or at
// the site root.
func (s *Storage) LocalPrefix() (string, bool) {
	prefix := strings.TrimSuffix(s.URL, "/")

	if !strings.HasPrefix(prefix, "/") || strings.Contains(prefix, "://") {
		return "", false
	}

	return prefix, true
}

func (s *Storage) contains(name string) bool {
	clean := path.Clean("/" + name)
	return clean != "/" && !strings.Contains(name, "..")
}
