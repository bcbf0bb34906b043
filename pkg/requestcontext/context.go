// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them, services and stores read them,
// tests inject them without running the HTTP stack.
//
// The authenticated holder is always passed explicitly through the context by
// the auth middleware; no module reaches into ambient session state.
package requestcontext

import (
	"context"
	"time"

	id "cardledger/pkg/domain"
)

type (
	holderIDKey    struct{}
	roleKey        struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
	clientMetaKey  struct{}
)

// HolderID retrieves the authenticated holder ID from the context.
// Returns the zero value (nil UUID) if not set.
func HolderID(ctx context.Context) id.HolderID {
	if holderID, ok := ctx.Value(holderIDKey{}).(id.HolderID); ok {
		return holderID
	}
	return id.HolderID{}
}

// WithHolderID injects an authenticated holder ID into the context.
func WithHolderID(ctx context.Context, holderID id.HolderID) context.Context {
	return context.WithValue(ctx, holderIDKey{}, holderID)
}

// Role retrieves the authenticated principal's role claim, or "".
func Role(ctx context.Context) string {
	if role, ok := ctx.Value(roleKey{}).(string); ok {
		return role
	}
	return ""
}

// WithRole injects a role claim into the context.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RequestID retrieves the request correlation ID, or "".
func RequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return requestID
	}
	return ""
}

// WithRequestID injects a request correlation ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now returns the request time if one was injected, otherwise time.Now().
// Expiry checks read the clock through this so tests can pin the date.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins the request clock. Used by middleware (request arrival time)
// and by tests that exercise expiry boundaries.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// ClientMeta retrieves the normalized client description ("browser/os") set
// by the request metadata middleware, or "".
func ClientMeta(ctx context.Context) string {
	if meta, ok := ctx.Value(clientMetaKey{}).(string); ok {
		return meta
	}
	return ""
}

// WithClientMeta injects a normalized client description into the context.
func WithClientMeta(ctx context.Context, meta string) context.Context {
	return context.WithValue(ctx, clientMetaKey{}, meta)
}
