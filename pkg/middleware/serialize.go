package middleware

import (
	"net/http"

	"github.com/bytedance/sonic"

	apperrors "github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/errors"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/progress"
)

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// SerializeMutations lets one mutating request through at a time. The
// request plays the busy indicator while holding the gate; a second one
// arriving meanwhile is answered with 409 Conflict. Reads pass untouched.
func SerializeMutations(gate *progress.Gate, indicator progress.Indicator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutation(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			err := gate.Do(indicator, func() error {
				next.ServeHTTP(w, r)
				return nil
			})
			if err != nil {
				body, _ := sonic.ConfigStd.Marshal(apperrors.ToFrontendError(err))
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(apperrors.HTTPStatus(err))
				_, _ = w.Write(body)
			}
		})
	}
}
