package trace

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	applog "moneytracker/internal/log"
)

// Recovery turns a handler panic into a JSON 500 response with the
// {"error": "..."} envelope and logs the stack.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			applog.FromContext(r.Context()).ErrorContext(r.Context(), "Panic recovered",
				applog.NewFields().
					WithError(fmt.Errorf("%v", rec)).
					WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, "", "").
					ToSlice()...,
			)
			applog.FromContext(r.Context()).DebugContext(r.Context(), "Panic stack", "stack", string(debug.Stack()))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Internal server error"})
		}()
		next.ServeHTTP(w, r)
	})
}
