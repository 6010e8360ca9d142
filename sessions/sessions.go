// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/site-checkin/auth"
	"github.com/danielhkuo/site-checkin/cliparse"
)

// CookieName is the admin session cookie
const CookieName = "kiosk_sid"

// PruneInterval is how often expired admin sessions are removed
const PruneInterval = 15 * time.Minute

var ErrNoSession = errors.New("no admin session")

// Store keeps admin sessions in the admin_session table.
type Store struct {
	db     *sql.DB
	secret string
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewStore(db *sql.DB, cfg cliparse.Config) *Store {
	return &Store{
		db:     db,
		secret: cfg.SessionSecret,
		ttl:    cfg.SessionTTL(),
		secure: cfg.Production,
		now:    time.Now,
	}
}

// WithClock replaces the time source (tests)
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Create starts a new elevated session and sets its cookie
func (s *Store) Create(ctx context.Context, w http.ResponseWriter) error {
	sid, err := auth.GenerateID(32)
	if err != nil {
		return err
	}

	expires := s.now().Add(s.ttl)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO admin_session (sid, expires_at) VALUES ($1, $2)
	`, sid, expires.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	s.setCookie(w, sid, expires)
	return nil
}

// Authenticate checks the request's session cookie. A valid session has its
// expiry pushed forward and the cookie re-issued. Returns ErrNoSession when
// the cookie is missing, forged, unknown, or expired.
func (s *Store) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	sid, err := s.sessionID(r)
	if err != nil {
		return err
	}

	now := s.now()
	expires := now.Add(s.ttl)
	res, err := s.db.ExecContext(ctx, `
		UPDATE admin_session SET expires_at = $1
		WHERE sid = $2 AND expires_at > $3
	`, expires.Unix(), sid, now.Unix())
	if err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}
	if n == 0 {
		return ErrNoSession
	}

	s.setCookie(w, sid, expires)
	return nil
}

// Destroy removes the session (if any) and clears the cookie
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer s.clearCookie(w)

	sid, err := s.sessionID(r)
	if errors.Is(err, ErrNoSession) {
		return nil
	}

	_, err = s.db.ExecContext(ctx, `DELETE FROM admin_session WHERE sid = $1`, sid)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Prune deletes expired sessions and returns how many were removed
func (s *Store) Prune(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM admin_session WHERE expires_at <= $1
	`, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}
	return res.RowsAffected()
}

// StartPruner runs Prune every interval until ctx is cancelled.
// onPrune, when non-nil, receives the number of rows removed.
func (s *Store) StartPruner(ctx context.Context, interval time.Duration, onPrune func(int64)) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.Prune(ctx)
				if err != nil {
					slog.Error("session prune failed", "error", err)
					continue
				}
				if n > 0 {
					slog.Info("expired admin sessions pruned", "count", n)
				}
				if onPrune != nil {
					onPrune(n)
				}
			}
		}
	}()
}

func (s *Store) sessionID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", ErrNoSession
	}
	sid, err := auth.VerifySessionID(cookie.Value, s.secret)
	if err != nil {
		return "", ErrNoSession
	}
	return sid, nil
}

func (s *Store) setCookie(w http.ResponseWriter, sid string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    auth.SignSessionID(sid, s.secret),
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Store) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
