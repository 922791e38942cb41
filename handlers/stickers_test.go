// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-post/models"
	"github.com/danielhkuo/quickly-post/testutil"
)

func TestUploadStickerHandler(t *testing.T) {
	env := newTestEnv(t)
	handler := NewStickerHandler(env.store, env.blobs)

	tests := []struct {
		name           string
		files          []testutil.File
		expectedStatus int
	}{
		{"png", []testutil.File{{Field: "file", Name: "smile.png", ContentType: "image/png", Data: testutil.PNG}}, http.StatusOK},
		{"gif", []testutil.File{{Field: "file", Name: "wave.gif", ContentType: "image/gif", Data: []byte("GIF89a")}}, http.StatusOK},
		{"webp not allowed", []testutil.File{{Field: "file", Name: "x.webp", ContentType: "image/webp", Data: []byte("RIFF")}}, http.StatusBadRequest},
		{"too large", []testutil.File{{Field: "file", Name: "big.png", ContentType: "image/png", Data: bytes.Repeat([]byte{1}, 501<<10)}}, http.StatusBadRequest},
		{"empty", []testutil.File{{Field: "file", Name: "none.png", ContentType: "image/png"}}, http.StatusBadRequest},
		{"no file", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeMultipartRequest(t, "POST", "/stickers", nil, tt.files...)
			w := httptest.NewRecorder()

			handler.UploadSticker(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusOK {
				var resp models.StickerUploadResponse
				testutil.AssertJSON(t, w, &resp)
				assert.True(t, resp.Success)
				assert.True(t, strings.HasPrefix(resp.URL, testutil.MemStorageBaseURL+"stickers/"))
				assert.True(t, env.blobs.Has(resp.URL))
			}
		})
	}

	assert.Equal(t, 2, env.blobs.Len())
}

func TestUploadStickerTooLargeMessage(t *testing.T) {
	env := newTestEnv(t)
	handler := NewStickerHandler(env.store, env.blobs)

	req := testutil.MakeMultipartRequest(t, "POST", "/stickers", nil,
		testutil.File{Field: "file", Name: "big.png", ContentType: "image/png", Data: bytes.Repeat([]byte{1}, 600<<10)})
	w := httptest.NewRecorder()

	handler.UploadSticker(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Contains(t, resp.Message, "600 KiB")
	assert.Contains(t, resp.Message, "500 KiB")
}

func TestListStickersHandler(t *testing.T) {
	env := newTestEnv(t)
	handler := NewStickerHandler(env.store, env.blobs)

	w := httptest.NewRecorder()
	handler.ListStickers(w, httptest.NewRequest("GET", "/stickers", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.JSONEq(t, "[]", w.Body.String())

	testutil.CreateTestSticker(t, env.store.DB(), "http://blobs.test/stickers/a.png")
	testutil.CreateTestSticker(t, env.store.DB(), "http://blobs.test/stickers/b.png")

	w = httptest.NewRecorder()
	handler.ListStickers(w, httptest.NewRequest("GET", "/stickers", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var stickers []models.Sticker
	testutil.AssertJSON(t, w, &stickers)
	require.Len(t, stickers, 2)
}
