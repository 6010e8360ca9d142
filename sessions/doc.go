// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package sessions stores elevated admin sessions server-side.
//
// The kiosk_sid cookie carries "<sid>.<hmac>" signed with SESSION_SECRET.
// Expiry is rolling: every authenticated request pushes it forward by the
// configured TTL. Expired rows are removed by StartPruner.
package sessions
