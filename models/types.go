package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultNotice is shown when no notice row has been written yet.
const DefaultNotice = "Welcome! Be kind, stay anonymous."

// MaxPostsPerPage caps ListPosts.
const MaxPostsPerPage = 50

// Like targets and directions
const (
	TargetPost    = "post"
	TargetComment = "comment"

	ActionLike   = "like"
	ActionUnlike = "unlike"
)

// Request types

type LoginRequest struct {
	AuthToken string `json:"authToken"`
}

type LikeRequest struct {
	Type   string `json:"type"`
	ID     int64  `json:"id"`
	Action string `json:"action"`
}

type VoteRequest struct {
	OptionID int64 `json:"optionId"`
}

// AdminRequest is the JSON body accepted by POST /admin.
type AdminRequest struct {
	Password string  `json:"password"`
	Action   string  `json:"action"`
	ID       int64   `json:"id,omitempty"`
	Content  *string `json:"content,omitempty"`
	Likes    *int64  `json:"likes,omitempty"`
}

// Response types

type SignupResponse struct {
	Success   bool   `json:"success"`
	AuthToken string `json:"authToken"`
	UserID    int64  `json:"userId"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type ProfileResponse struct {
	User Identity `json:"user"`
}

type CreatedResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

type LikesResponse struct {
	Success bool  `json:"success"`
	Likes   int64 `json:"likes"`
}

type VoteResponse struct {
	Success bool  `json:"success"`
	Votes   int64 `json:"votes"`
}

type PostsResponse struct {
	Posts  []PostWithPoll `json:"posts"`
	Notice string         `json:"notice"`
}

type StickerUploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

type BulkUploadResponse struct {
	Success       bool           `json:"success"`
	UploadedCount int            `json:"uploadedCount"`
	Files         []UploadResult `json:"files"`
}

// UploadResult is the outcome of one file in a bulk sticker upload.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

type RealtimeTokenResponse struct {
	Token     string    `json:"token"`
	ClientID  string    `json:"clientId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Domain types

// Identity is an anonymous account. AuthTokenHash never leaves the server.
type Identity struct {
	ID                int64      `json:"id" db:"id"`
	AuthTokenHash     string     `json:"-" db:"auth_token_hash"`
	Username          *string    `json:"username" db:"username"`
	ProfilePictureURL *string    `json:"profile_picture_url" db:"profile_picture_url"`
	Bio               *string    `json:"bio" db:"bio"`
	URLs              StringList `json:"urls" db:"urls"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

type Post struct {
	ID        int64     `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	ImageURL  *string   `json:"image_url" db:"image_url"`
	Likes     int64     `json:"likes" db:"likes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type PollOption struct {
	ID         int64  `json:"id" db:"id"`
	PostID     int64  `json:"post_id" db:"post_id"`
	OptionText string `json:"option_text" db:"option_text"`
	Votes      int64  `json:"votes" db:"votes"`
}

// PostWithPoll is a post annotated with its poll options; a post is a poll
// iff PollOptions is non-empty.
type PostWithPoll struct {
	Post
	PollOptions []PollOption `json:"poll_options"`
}

type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"post_id" db:"post_id"`
	ParentID  *int64    `json:"parent_id" db:"parent_id"`
	Content   string    `json:"content" db:"content"`
	ImageURL  *string   `json:"image_url" db:"image_url"`
	Likes     int64     `json:"likes" db:"likes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Sticker struct {
	ID        int64     `json:"id" db:"id"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Notice struct {
	Content   string    `json:"content" db:"content"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Dump is everything the moderation read-all returns.
type Dump struct {
	Posts       []Post       `json:"posts"`
	Comments    []Comment    `json:"comments"`
	PollOptions []PollOption `json:"poll_options"`
	Stickers    []Sticker    `json:"stickers"`
	Notice      string       `json:"notice"`
}

// StringList is stored as a JSON array in a TEXT column so both SQL
// dialects can hold it.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decoding string list: %w", err)
	}
	*l = out
	return nil
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
