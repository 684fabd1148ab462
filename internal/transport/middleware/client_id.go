package middleware

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/queue-backend/pkg/ctxutil"
)

// maxClientIDLength bounds the X-Client-ID header echoed into events.
const maxClientIDLength = 64

// ClientID stores the X-Client-ID header in the request context. Values
// longer than 64 bytes are ignored.
func ClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Client-ID"))
		if id != "" && len(id) <= maxClientIDLength {
			ctx := ctxutil.WithClientID(r.Context(), id)
			annotate(w, ctx)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
