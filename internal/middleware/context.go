package middleware

import (
	"context"

	"github.com/Lixing-Zhang/aami-bangali/internal/storefront"
)

type ctxKey string

const (
	ctxKeyIsHTMX     ctxKey = "is_htmx"
	ctxKeySessionID  ctxKey = "session_id"
	ctxKeyStorefront ctxKey = "storefront"
	ctxKeyCommit     ctxKey = "session_commit"
)

// WithHTMX marks the request as coming from htmx
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX reports whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// WithStorefront attaches the visitor's session id and storefront
func WithStorefront(ctx context.Context, sessionID string, sf *storefront.Storefront) context.Context {
	ctx = context.WithValue(ctx, ctxKeySessionID, sessionID)
	return context.WithValue(ctx, ctxKeyStorefront, sf)
}

// Storefront returns the visitor's storefront, or nil outside the Session middleware
func Storefront(ctx context.Context) *storefront.Storefront {
	sf, _ := ctx.Value(ctxKeyStorefront).(*storefront.Storefront)
	return sf
}

// SessionID returns the visitor's session id
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeySessionID).(string)
	return id
}

func withCommit(ctx context.Context, commit func()) context.Context {
	return context.WithValue(ctx, ctxKeyCommit, commit)
}

// CommitSession stores a draft session and issues its cookie. Call it before
// writing the response when a safe-method request changes the storefront.
// It is a no-op for sessions that are already stored.
func CommitSession(ctx context.Context) {
	if commit, ok := ctx.Value(ctxKeyCommit).(func()); ok {
		commit()
	}
}
