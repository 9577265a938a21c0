// internal/api/middleware/recover.go
package middleware

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/newthinker/pnlboard/internal/api/response"
)

// Recover turns a handler panic into a 500 JSON error and logs it.
func Recover(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					log.Error("handler panic",
						zap.String("path", r.URL.Path),
						zap.String("panic", fmt.Sprint(v)),
						zap.Stack("stack"))
					response.Error(w, http.StatusInternalServerError, nil)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
