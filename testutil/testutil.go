// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/quickly-post/cliparse"
	"github.com/danielhkuo/quickly-post/db"
)

// SetupTestDB creates a fresh SQLite database with the full schema in a
// temporary directory. It is closed automatically when the test ends.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  db.TypeSQLite,
		JWTSecret:     "test-jwt-secret",
		AdminPassword: "test-admin-password",
		PublicBaseURL: "http://localhost:3318",
	}
}

// CreateTestPost inserts a post with optional poll options and returns the
// post ID and option IDs in order
func CreateTestPost(t *testing.T, conn *sqlx.DB, content string, options ...string) (int64, []int64) {
	t.Helper()

	var postID int64
	err := conn.QueryRowx(`
		INSERT INTO posts (content, likes, created_at) VALUES ($1, 0, $2) RETURNING id
	`, content, time.Now().UTC()).Scan(&postID)
	if err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}

	optionIDs := make([]int64, 0, len(options))
	for _, opt := range options {
		var id int64
		err := conn.QueryRowx(`
			INSERT INTO poll_options (post_id, option_text, votes) VALUES ($1, $2, 0) RETURNING id
		`, postID, opt).Scan(&id)
		if err != nil {
			t.Fatalf("Failed to create test poll option: %v", err)
		}
		optionIDs = append(optionIDs, id)
	}

	return postID, optionIDs
}

// CreateTestComment inserts a comment and returns its ID
func CreateTestComment(t *testing.T, conn *sqlx.DB, postID int64, parentID *int64, content string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRowx(`
		INSERT INTO comments (post_id, parent_id, content, likes, created_at)
		VALUES ($1, $2, $3, 0, $4) RETURNING id
	`, postID, parentID, content, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}
	return id
}

// CreateTestSticker inserts a sticker row and returns its ID
func CreateTestSticker(t *testing.T, conn *sqlx.DB, url string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRowx(`
		INSERT INTO stickers (url, created_at) VALUES ($1, $2) RETURNING id
	`, url, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test sticker: %v", err)
	}
	return id
}

// CountRows returns the number of rows in table matching where
func CountRows(t *testing.T, conn *sqlx.DB, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	if err := conn.Get(&n, query, args...); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// File is one file part of a multipart test request
type File struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// MakeMultipartRequest creates a multipart/form-data test request
func MakeMultipartRequest(t *testing.T, method, path string, fields map[string][]string, files ...File) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, values := range fields {
		for _, v := range values {
			if err := mw.WriteField(name, v); err != nil {
				t.Fatalf("Failed to write field %s: %v", name, err)
			}
		}
	}
	for _, f := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+f.Field+`"; filename="`+f.Name+`"`)
		h.Set("Content-Type", f.ContentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("Failed to create part %s: %v", f.Name, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			t.Fatalf("Failed to write part %s: %v", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// PNG is the smallest valid PNG header, enough for content sniffing
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

// MemStorage is an in-memory storage.Storage for handler tests
type MemStorage struct {
	mu      sync.Mutex
	objects map[string][]byte

	// FailPut, when set, is consulted before every Put
	FailPut func(key string) error
}

func NewMemStorage() *MemStorage {
	return &MemStorage{objects: make(map[string][]byte)}
}

func (m *MemStorage) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if m.FailPut != nil {
		if err := m.FailPut(key); err != nil {
			return "", err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	url := MemStorageBaseURL + key
	m.objects[url] = append([]byte(nil), data...)
	return url, nil
}

func (m *MemStorage) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, url)
	return nil
}

// Has reports whether an object is stored under url
func (m *MemStorage) Has(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[url]
	return ok
}

// Len returns the number of stored objects
func (m *MemStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// MemStorageBaseURL prefixes every URL returned by MemStorage
const MemStorageBaseURL = "http://blobs.test/"
