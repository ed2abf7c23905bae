package middleware

import (
	"net/http"
	"runtime/debug"

	"service-parcel/internal/logx"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover turns a handler panic into a JSON 500. http.ErrAbortHandler is re-raised.
func Recover(logger logx.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered",
					logx.String("request_id", chimw.GetReqID(r.Context())),
					logx.Any("panic", rec),
					logx.String("stack", string(debug.Stack())),
				)
				if r.Header.Get("Connection") != "Upgrade" {
					writeMessage(w, http.StatusInternalServerError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
