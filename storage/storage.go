// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the URL path under which stored objects are served.
const PublicPrefix = "/blobs/"

var ErrInvalidKey = errors.New("invalid object key")

// Storage holds public objects such as uploaded images and stickers.
type Storage interface {
	// Put stores data under key and returns its public URL.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes the object behind a URL previously returned by Put.
	// Deleting an object that is already gone is not an error.
	Delete(ctx context.Context, url string) error
}

// Disk keeps objects as files under a root directory.
type Disk struct {
	root    string
	baseURL string
	logger  *slog.Logger
}

// NewDisk creates root if needed. baseURL is the externally reachable
// origin of the server, e.g. http://localhost:3318.
func NewDisk(root, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &Disk{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.Default().With("component", "storage"),
	}, nil
}

func (d *Disk) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !filepath.IsLocal(key) {
		return "", fmt.Errorf("%q: %w", key, ErrInvalidKey)
	}

	dst := filepath.Join(d.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	// Write to a temp file first so readers never see a partial object.
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp object: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("failed to store object: %w", err)
	}

	d.logger.Debug("object stored", "key", key, "bytes", len(data), "content_type", contentType)
	return d.baseURL + PublicPrefix + key, nil
}

func (d *Disk) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, ok := d.keyFor(url)
	if !ok {
		// Not one of ours, so there is nothing on disk to remove.
		d.logger.Warn("ignoring delete of foreign object", "url", url)
		return nil
	}

	err := os.Remove(filepath.Join(d.root, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Handler serves stored objects. Mount it at PublicPrefix.
func (d *Disk) Handler() http.Handler {
	return http.StripPrefix(PublicPrefix, http.FileServer(http.Dir(d.root)))
}

func (d *Disk) keyFor(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, d.baseURL+PublicPrefix)
	if !ok || !filepath.IsLocal(key) {
		return "", false
	}
	return key, true
}

// Key builds a collision-free object key such as "pfp-<uuid>-cat.png".
// The prefix may contain a directory, as in "stickers/".
func Key(prefix, filename string) string {
	name := sanitize(path.Base(strings.ReplaceAll(filename, `\`, "/")))
	sep := "-"
	if strings.HasSuffix(prefix, "/") {
		sep = ""
	}
	return prefix + sep + uuid.NewString() + "-" + name
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}
