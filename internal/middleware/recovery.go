package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"contractpad/internal/httputil"
)

// headerTracker notes whether the handler already started its response
type headerTracker struct {
	http.ResponseWriter
	wroteHeader bool
}

func (t *headerTracker) WriteHeader(status int) {
	t.wroteHeader = true
	t.ResponseWriter.WriteHeader(status)
}

func (t *headerTracker) Write(b []byte) (int, error) {
	t.wroteHeader = true
	return t.ResponseWriter.Write(b)
}

// Recovery turns a panicking handler into a 500 problem response carrying
// the request ID. http.ErrAbortHandler is passed through so net/http can
// drop the connection. A response that has already started is left as is.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tracker := &headerTracker{ResponseWriter: w}

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				requestID := httputil.GetRequestID(r)
				logger.Error("handler panicked",
					"panic", rec,
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"response_started", tracker.wroteHeader,
					"stack", string(debug.Stack()),
				)

				if tracker.wroteHeader {
					return
				}

				var extras map[string]interface{}
				if requestID != "" {
					extras = map[string]interface{}{"request_id": requestID}
				}
				httputil.RespondErrorWithExtras(w, http.StatusInternalServerError, "internal server error", extras)
			}()

			next.ServeHTTP(tracker, r)
		})
	}
}
