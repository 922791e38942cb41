// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-post/auth"
	"github.com/danielhkuo/quickly-post/handlers"
	"github.com/danielhkuo/quickly-post/middleware"
	"github.com/danielhkuo/quickly-post/moderation"
	"github.com/danielhkuo/quickly-post/realtime"
	"github.com/danielhkuo/quickly-post/storage"
	"github.com/danielhkuo/quickly-post/store"
)

// Services are the components the routes dispatch to. Realtime may be nil.
type Services struct {
	Store    *store.Store
	Authn    *auth.Authenticator
	Gateway  *moderation.Gateway
	Blobs    storage.Storage
	Realtime *realtime.Issuer
}

// blobServer is implemented by storage backends that serve their own objects.
type blobServer interface {
	Handler() http.Handler
}

func NewRouter(svc Services) *http.ServeMux {
	mux := http.NewServeMux()
	session := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(svc.Authn.Sessions(), next))
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(svc.Authn)
	postHandler := handlers.NewPostHandler(svc.Store, svc.Blobs)
	commentHandler := handlers.NewCommentHandler(svc.Store, svc.Blobs)
	likeHandler := handlers.NewLikeHandler(svc.Store)
	pollHandler := handlers.NewPollHandler(svc.Store)
	stickerHandler := handlers.NewStickerHandler(svc.Store, svc.Blobs)
	adminHandler := handlers.NewAdminHandler(svc.Gateway)
	realtimeHandler := handlers.NewRealtimeHandler(svc.Realtime)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Store.DB().PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /auth/signup", middleware.WithLogging(authHandler.Signup))
	mux.HandleFunc("POST /auth/complete-profile", middleware.WithLogging(authHandler.CompleteProfile))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /profile", session(authHandler.GetProfile))
	mux.HandleFunc("PUT /profile", session(authHandler.UpdateProfile))

	// Content (public)
	mux.HandleFunc("GET /posts", middleware.WithLogging(postHandler.ListPosts))
	mux.HandleFunc("POST /posts", middleware.WithLogging(postHandler.CreatePost))
	mux.HandleFunc("GET /posts/{id}/comments", middleware.WithLogging(commentHandler.ListComments))
	mux.HandleFunc("POST /posts/{id}/comments", middleware.WithLogging(commentHandler.CreateComment))

	// Interactions
	mux.HandleFunc("GET /likes", middleware.WithLogging(likeHandler.GetLikes))
	mux.HandleFunc("POST /likes", middleware.WithLogging(likeHandler.Like))
	mux.HandleFunc("POST /polls/vote", middleware.WithLogging(pollHandler.Vote))

	// Stickers
	mux.HandleFunc("GET /stickers", middleware.WithLogging(stickerHandler.ListStickers))
	mux.HandleFunc("POST /stickers", middleware.WithLogging(stickerHandler.UploadSticker))

	// Moderation (admin password)
	mux.HandleFunc("GET /admin", middleware.WithLogging(adminHandler.ReadAll))
	mux.HandleFunc("POST /admin", middleware.WithLogging(adminHandler.Execute))
	mux.HandleFunc("POST /admin/stickers", middleware.WithLogging(adminHandler.UploadStickers))

	// Realtime
	mux.HandleFunc("GET /realtime/token", middleware.WithLogging(realtimeHandler.Token))

	// Uploaded objects, when the backend serves them itself
	if bs, ok := svc.Blobs.(blobServer); ok {
		mux.Handle("GET "+storage.PublicPrefix, bs.Handler())
	}

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-post API v1"))
	})

	return mux
}
