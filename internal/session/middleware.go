package session

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	commonhttp "github.com/eNoodles/user-service/internal/common/http"
	"github.com/eNoodles/user-service/internal/common/logger"
)

type identityContextKeyType struct{}

var identityContextKey = identityContextKeyType{}

// IdentityFromContext returns the identity attached by RequireSession.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(Identity)
	return id, ok
}

// The token travels in the `session` field of the request JSON body, not in
// a header or cookie. Extra fields are ignored here and re-read by the
// handler from the restored body.
type sessionEnvelope struct {
	Session string `json:"session"`
}

// RequireSession is the authentication gate. It is applied per protected
// operation; create-user and login bypass it entirely. A missing, unknown,
// expired, or superseded token rejects the request with 401 before any
// handler logic runs. Store faults surface as 503, never 401.
func RequireSession(dir *Directory, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, body, err := extractSessionID(r)
			if err != nil {
				log.Warnf("auth gate: unreadable body on %s %s: %v", r.Method, r.URL.Path, err)
				commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeUnauthenticated, "authentication required", nil, commonhttp.GetTraceID(r.Context()))
				return
			}

			// Handlers that parse the body get it back intact.
			r.Body = io.NopCloser(bytes.NewReader(body))

			identity, err := dir.Validate(r.Context(), sessionID)
			if err != nil {
				commonhttp.HandleError(w, r, err, log)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractSessionID(r *http.Request) (string, []byte, error) {
	if r.Body == nil {
		return "", nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, err
	}
	r.Body.Close()

	if len(body) == 0 {
		return "", body, nil
	}

	var env sessionEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		// Malformed body means no usable token; the gate rejects with 401.
		return "", body, nil
	}

	return env.Session, body, nil
}
