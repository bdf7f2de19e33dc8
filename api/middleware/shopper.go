package middleware

import (
	"net/http"
	"time"

	"github.com/verdantloop/verdantloop-backend/pkg/config"
	"github.com/verdantloop/verdantloop-backend/pkg/logger"
	"github.com/verdantloop/verdantloop-backend/pkg/session"
	"github.com/verdantloop/verdantloop-backend/pkg/types"
)

// Shopper resolves the requester's identity. The optional user_id query
// parameter is trusted as-is since there is no authentication layer, and an
// anonymous session cookie is minted on first contact. Both end up in the
// request context for the handlers.
func Shopper(cfg config.SessionConfig, sessions *session.Manager, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
				if sessions != nil {
					sessions.Touch(ctx, sessionID)
				}
			} else if sessions != nil {
				sessionID = sessions.Mint(ctx)
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    sessionID,
					Path:     "/",
					Expires:  time.Now().Add(cfg.TTL),
					MaxAge:   int(cfg.TTL / time.Second),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			shopper := types.NewShopper(r.URL.Query().Get("user_id"), sessionID)

			if logg != nil {
				if shopper.UserID != nil {
					ctx = logg.WithUserID(ctx, *shopper.UserID)
				}
				if shopper.SessionID != "" {
					ctx = logg.WithSessionID(ctx, shopper.SessionID)
				}
			}

			ctx = WithShopper(ctx, shopper)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
