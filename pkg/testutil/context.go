package testutil

import (
	"net/http"
	"time"

	"cardledger/internal/holder"
	id "cardledger/pkg/domain"
	"cardledger/pkg/requestcontext"
)

// AsHolder simulates the auth middleware for a holder-role request.
func AsHolder(req *http.Request, holderID id.HolderID) *http.Request {
	ctx := requestcontext.WithHolderID(req.Context(), holderID)
	ctx = requestcontext.WithRole(ctx, holder.RoleHolder)
	return req.WithContext(ctx)
}

// AsAdmin simulates the auth middleware for an admin request.
func AsAdmin(req *http.Request, holderID id.HolderID) *http.Request {
	ctx := requestcontext.WithHolderID(req.Context(), holderID)
	ctx = requestcontext.WithRole(ctx, holder.RoleAdmin)
	return req.WithContext(ctx)
}

// AtTime pins the request clock, the way the metadata middleware stamps the
// arrival time. Expiry tests use this to cross date boundaries.
func AtTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
