// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/site-checkin/models"
	"github.com/danielhkuo/site-checkin/sessions"
	"github.com/danielhkuo/site-checkin/testutil"
)

func TestRequireAdmin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := sessions.NewStore(conn, testutil.GetTestConfig())

	called := false
	h := RequireAdmin(store, func(w http.ResponseWriter, r *http.Request) {
		called = true
		JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
	})

	t.Run("no cookie", func(t *testing.T) {
		called = false
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest("GET", "/api/admin/logins", nil))

		testutil.AssertErrorCode(t, w, http.StatusUnauthorized, models.ErrUnauthorized)
		if called {
			t.Error("Expected handler not to be called")
		}
	})

	t.Run("forged cookie", func(t *testing.T) {
		called = false
		req := httptest.NewRequest("GET", "/api/admin/logins", nil)
		req.AddCookie(&http.Cookie{Name: sessions.CookieName, Value: "abc.def"})
		w := httptest.NewRecorder()
		h(w, req)

		testutil.AssertErrorCode(t, w, http.StatusUnauthorized, models.ErrUnauthorized)
		if called {
			t.Error("Expected handler not to be called")
		}
	})

	t.Run("valid session", func(t *testing.T) {
		called = false
		login := httptest.NewRecorder()
		if err := store.Create(context.Background(), login); err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}

		req := httptest.NewRequest("GET", "/api/admin/logins", nil)
		for _, c := range login.Result().Cookies() {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		h(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if !called {
			t.Error("Expected handler to be called")
		}
	})
}
