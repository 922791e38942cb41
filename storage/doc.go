// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package storage stores uploaded files and hands back public URLs.

# Disk Storage

Disk writes objects under a root directory and serves them from /blobs/:

	disk, err := storage.NewDisk("./blobs", "http://localhost:3318")
	url, err := disk.Put(ctx, storage.Key("pfp", "me.png"), data, "image/png")
	mux.Handle("GET /blobs/", disk.Handler())

Delete takes the URL returned by Put. Deleting a missing object succeeds.

# Upload Rules

Rules validate content type and size before anything is stored:

	if err := storage.StickerRules.Check(file); err != nil {
		// errors.Is(err, storage.ErrTooLarge) etc.
	}
*/
package storage
