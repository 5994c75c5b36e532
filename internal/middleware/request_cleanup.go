package middleware

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// DefaultMaxDrainBytes covers the largest plan body a client sends in practice.
const DefaultMaxDrainBytes = 1 << 20

// DrainAndCloseRequest reads what the handler left of the request body, up
// to maxDrain bytes, and closes it so the connection can be reused. A body
// with more left over is closed unread.
func DrainAndCloseRequest(maxDrain int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			drained, _ := io.CopyN(io.Discard, r.Body, maxDrain+1)
			if drained > maxDrain {
				log.Tracef("%s %s: body not drained past %d bytes", r.Method, r.URL.Path, maxDrain)
			}
			_ = r.Body.Close()
		})
	}
}
