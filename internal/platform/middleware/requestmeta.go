package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"cardledger/pkg/requestcontext"
)

// RequestMeta stamps each request with an ID, the request wall-clock time,
// and parsed client details for the audit trail. Runs before auth so even
// rejected requests carry a request ID in logs.
func RequestMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())
		ctx = requestcontext.WithClientMeta(ctx, clientMeta(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientMeta condenses the user agent into "browser x.y/os" for audit events.
func clientMeta(r *http.Request) string {
	ua := useragent.New(r.UserAgent())
	if ua == nil {
		return ""
	}
	browser, version := ua.Browser()
	if browser == "" {
		return ua.OS()
	}
	return fmt.Sprintf("%s %s/%s", browser, version, ua.OS())
}
