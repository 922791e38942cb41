// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file is too large")
)

// File is an uploaded file held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Rules restricts which uploads are accepted.
type Rules struct {
	Types   []string
	MaxSize int64
}

var (
	// ImageRules apply to post, comment and profile images.
	ImageRules = Rules{
		Types:   []string{"image/png", "image/jpeg", "image/gif", "image/webp"},
		MaxSize: 5 << 20,
	}
	// StickerRules apply to public sticker uploads.
	StickerRules = Rules{
		Types:   []string{"image/png", "image/gif"},
		MaxSize: 500 << 10,
	}
	// BulkStickerRules apply to admin sticker uploads.
	BulkStickerRules = Rules{
		Types:   []string{"image/png", "image/gif", "image/webp"},
		MaxSize: 2 << 20,
	}
)

// Check reports why f breaks the rules, or nil.
func (r Rules) Check(f File) error {
	if len(f.Data) == 0 {
		return fmt.Errorf("%s: %w", f.Name, ErrEmptyFile)
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(f.ContentType, ";", 2)[0]))
	if !slices.Contains(r.Types, ct) {
		return fmt.Errorf("%s is %q, allowed: %s: %w", f.Name, f.ContentType, strings.Join(r.Types, ", "), ErrUnsupportedType)
	}
	if int64(len(f.Data)) > r.MaxSize {
		return fmt.Errorf("%s is %s, max %s: %w",
			f.Name, humanize.IBytes(uint64(len(f.Data))), humanize.IBytes(uint64(r.MaxSize)), ErrTooLarge)
	}
	return nil
}
