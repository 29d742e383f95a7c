package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Lixing-Zhang/aami-bangali/internal/session"
)

// SessionOptions configures the visitor cookie
type SessionOptions struct {
	CookieName string
	Secure     bool
	MaxAge     time.Duration
}

// Session resolves the visitor's storefront from the session cookie.
//
// A visitor without a known session gets a draft storefront. The draft is
// stored, and the cookie issued, when the request changes state: any
// non-GET/HEAD/OPTIONS method, or a handler calling CommitSession. Plain
// page views therefore leave nothing behind.
func Session(store *session.Store, opts SessionOptions, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var current string
			if c, err := r.Cookie(opts.CookieName); err == nil {
				current = c.Value
			}

			if sf, ok := store.Lookup(current); ok {
				// refresh the cookie on every response so expiry slides with activity
				setSessionCookie(w, opts, current)
				ctx := WithStorefront(r.Context(), current, sf)
				next.ServeHTTP(w, r.WithContext(withCommit(ctx, func() {})))
				return
			}

			id, sf := store.Draft()
			var once sync.Once
			commit := func() {
				once.Do(func() {
					store.Save(id, sf)
					setSessionCookie(w, opts, id)
					logger.Debug("session started", "had_cookie", current != "")
				})
			}

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
			default:
				commit()
			}

			ctx := WithStorefront(r.Context(), id, sf)
			next.ServeHTTP(w, r.WithContext(withCommit(ctx, commit)))
		})
	}
}

func setSessionCookie(w http.ResponseWriter, opts SessionOptions, id string) {
	cookie := &http.Cookie{
		Name:     opts.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if opts.MaxAge > 0 {
		cookie.MaxAge = int(opts.MaxAge.Seconds())
	}
	http.SetCookie(w, cookie)
}
