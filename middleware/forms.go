// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/http"
	"slices"

	"github.com/danielhkuo/quickly-post/storage"
)

// MaxFormBody bounds multipart request bodies. Per-file limits are enforced
// later by storage.Rules.
const MaxFormBody = 32 << 20

// ParseMultipart reads a multipart/form-data body into r.MultipartForm.
func ParseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormBody)
	if err := r.ParseMultipartForm(MaxFormBody); err != nil {
		return fmt.Errorf("invalid multipart form: %w", err)
	}
	return nil
}

// FormFile returns the first file uploaded under field, or nil when the
// field is absent. ParseMultipart must have been called.
func FormFile(r *http.Request, field string) (*storage.File, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, nil
	}
	f, err := readPart(r.MultipartForm.File[field][0])
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FormFiles returns every file in the form, sorted by field name and then
// in upload order within a field.
func FormFiles(r *http.Request) ([]storage.File, error) {
	if r.MultipartForm == nil {
		return nil, errors.New("multipart form not parsed")
	}

	var files []storage.File
	for _, field := range slices.Sorted(maps.Keys(r.MultipartForm.File)) {
		for _, fh := range r.MultipartForm.File[field] {
			f, err := readPart(fh)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
		}
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader) (storage.File, error) {
	src, err := fh.Open()
	if err != nil {
		return storage.File{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return storage.File{}, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	return storage.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
