// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime issues short-lived tokens for the live update channel.

A token binds a client id to the channel for DefaultTTL. Tokens live in
Redis under realtime-token:<token> and expire there:

	rdb, err := realtime.Connect(ctx, cfg.RedisURL)
	issuer := realtime.NewIssuer(realtime.NewRedisBackend(rdb), realtime.DefaultTTL)
	resp, err := issuer.Issue(ctx, r.URL.Query().Get("clientId"))

Without a client id the issuer generates one such as client-k3j9x0a1b.
*/
package realtime
