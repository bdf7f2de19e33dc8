package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/verdantloop/verdantloop-backend/pkg/config"
	"github.com/verdantloop/verdantloop-backend/pkg/session"
	"github.com/verdantloop/verdantloop-backend/pkg/types"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{CookieName: "session_id", TTL: 720 * time.Hour}
}

func newManager(t *testing.T) *session.Manager {
	t.Helper()

	mgr, err := session.NewManager(nil, 720*time.Hour)
	if err != nil {
		t.Fatalf("building manager: %v", err)
	}
	return mgr
}

func TestShopperMintsCookieForNewVisitor(t *testing.T) {
	t.Parallel()

	var seen types.Shopper
	handler := Shopper(testSessionConfig(), newManager(t), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ShopperFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if seen.SessionID == "" {
		t.Fatal("expected a minted session id")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "session_id" || cookies[0].Value != seen.SessionID {
		t.Fatalf("cookie not set correctly: %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("session cookie must be http only")
	}
}

func TestShopperReusesExistingCookie(t *testing.T) {
	t.Parallel()

	var seen types.Shopper
	handler := Shopper(testSessionConfig(), newManager(t), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ShopperFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "existing-session"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen.SessionID != "existing-session" {
		t.Fatalf("session id = %q, want existing-session", seen.SessionID)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no new cookie expected for returning visitors")
	}
}

func TestShopperReadsUserIDQueryParam(t *testing.T) {
	t.Parallel()

	var seen types.Shopper
	handler := Shopper(testSessionConfig(), newManager(t), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ShopperFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?user_id=user-42", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-9"})

	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen.UserID == nil || *seen.UserID != "user-42" {
		t.Fatalf("user id not picked up: %+v", seen)
	}
	if seen.SessionID != "sess-9" {
		t.Fatalf("session id = %q, want sess-9", seen.SessionID)
	}
}
