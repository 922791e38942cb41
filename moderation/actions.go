// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package moderation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/quickly-post/models"
	"github.com/danielhkuo/quickly-post/storage"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrUnknownAction  = errors.New("unknown action")
	ErrInvalidPayload = errors.New("invalid action payload")
	ErrNoValidFiles   = errors.New("no valid files were uploaded")
)

// Wire names of the actions accepted by ParseAction.
const (
	ActionLogin            = "login"
	ActionReadAll          = "read_all"
	ActionDeletePost       = "delete_post"
	ActionDeleteComment    = "delete_comment"
	ActionDeletePollOption = "delete_poll_option"
	ActionDeleteSticker    = "delete_sticker"
	ActionUpdatePost       = "update_post"
	ActionUpdateComment    = "update_comment"
	ActionUpdatePollOption = "update_poll_option"
	ActionUpdateNotice     = "update_notice"
)

// Action is one moderation request. The set of actions is closed; Execute
// handles every variant defined in this file.
type Action interface {
	isAction()
}

type (
	Login   struct{}
	ReadAll struct{}

	DeletePost       struct{ ID int64 }
	DeleteComment    struct{ ID int64 }
	DeletePollOption struct{ ID int64 }
	// DeleteSticker removes the row and its stored image. URL is used only
	// when the row is already gone.
	DeleteSticker struct {
		ID  int64
		URL string
	}

	UpdatePost struct {
		ID      int64
		Content string
		Likes   int64
	}
	UpdateComment struct {
		ID      int64
		Content string
	}
	UpdatePollOption struct {
		ID   int64
		Text string
	}
	UpdateNotice struct{ Content string }

	UploadStickers struct{ Files []storage.File }
)

func (Login) isAction()            {}
func (ReadAll) isAction()          {}
func (DeletePost) isAction()       {}
func (DeleteComment) isAction()    {}
func (DeletePollOption) isAction() {}
func (DeleteSticker) isAction()    {}
func (UpdatePost) isAction()       {}
func (UpdateComment) isAction()    {}
func (UpdatePollOption) isAction() {}
func (UpdateNotice) isAction()     {}
func (UploadStickers) isAction()   {}

// ParseAction turns the JSON body of POST /admin into an Action. Callers
// run Gateway.Authorize first so a bad password never sees payload errors.
func ParseAction(req models.AdminRequest) (Action, error) {
	switch req.Action {
	case ActionLogin:
		return Login{}, nil
	case ActionReadAll:
		return ReadAll{}, nil

	case ActionDeletePost:
		if err := needID(req); err != nil {
			return nil, err
		}
		return DeletePost{ID: req.ID}, nil
	case ActionDeleteComment:
		if err := needID(req); err != nil {
			return nil, err
		}
		return DeleteComment{ID: req.ID}, nil
	case ActionDeletePollOption:
		if err := needID(req); err != nil {
			return nil, err
		}
		return DeletePollOption{ID: req.ID}, nil
	case ActionDeleteSticker:
		if err := needID(req); err != nil {
			return nil, err
		}
		// content carries the sticker URL for this action
		var url string
		if req.Content != nil {
			url = *req.Content
		}
		return DeleteSticker{ID: req.ID, URL: url}, nil

	case ActionUpdatePost:
		if err := needID(req); err != nil {
			return nil, err
		}
		if req.Content == nil || req.Likes == nil {
			return nil, fmt.Errorf("%s needs content and likes: %w", req.Action, ErrInvalidPayload)
		}
		if *req.Likes < 0 {
			return nil, fmt.Errorf("likes must not be negative: %w", ErrInvalidPayload)
		}
		return UpdatePost{ID: req.ID, Content: *req.Content, Likes: *req.Likes}, nil
	case ActionUpdateComment:
		content, err := needContent(req)
		if err != nil {
			return nil, err
		}
		return UpdateComment{ID: req.ID, Content: content}, nil
	case ActionUpdatePollOption:
		content, err := needContent(req)
		if err != nil {
			return nil, err
		}
		return UpdatePollOption{ID: req.ID, Text: content}, nil
	case ActionUpdateNotice:
		if req.Content == nil || strings.TrimSpace(*req.Content) == "" {
			return nil, fmt.Errorf("%s needs content: %w", req.Action, ErrInvalidPayload)
		}
		return UpdateNotice{Content: *req.Content}, nil
	}

	return nil, fmt.Errorf("%q: %w", req.Action, ErrUnknownAction)
}

func needID(req models.AdminRequest) error {
	if req.ID <= 0 {
		return fmt.Errorf("%s needs an id: %w", req.Action, ErrInvalidPayload)
	}
	return nil
}

func needContent(req models.AdminRequest) (string, error) {
	if err := needID(req); err != nil {
		return "", err
	}
	if req.Content == nil {
		return "", fmt.Errorf("%s needs content: %w", req.Action, ErrInvalidPayload)
	}
	return *req.Content, nil
}
