package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
)

type csrfContextKey string

const CSRFTokenContextKey csrfContextKey = "csrf_token"

// CSRFMiddleware provides CSRF protection for the storefront's forms.
type CSRFMiddleware struct {
	store sessions.Store
}

// NewCSRFMiddleware creates a new CSRF middleware
func NewCSRFMiddleware(store sessions.Store) *CSRFMiddleware {
	return &CSRFMiddleware{store: store}
}

// CSRFProtection validates the token on every state-changing request.
func (m *CSRFMiddleware) CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.store.Get(r, "session")
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		sessionToken, ok := session.Values["csrf_token"].(string)
		if !ok || sessionToken == "" {
			sessionToken = GenerateCSRFToken()
			session.Values["csrf_token"] = sessionToken
			session.Save(r, w)
		}

		requestToken := r.Header.Get("X-CSRF-Token")
		if requestToken == "" {
			requestToken = r.FormValue("csrf_token")
		}

		if requestToken != sessionToken {
			http.Error(w, "CSRF token mismatch", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// EnsureCSRFToken guarantees a token exists in the session and exposes it to
// templates through the request context.
func (m *CSRFMiddleware) EnsureCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, "session")
		if err == nil {
			token, ok := session.Values["csrf_token"].(string)
			if !ok || token == "" {
				token = GenerateCSRFToken()
				session.Values["csrf_token"] = token
				session.Save(r, w)
			}
			ctx := context.WithValue(r.Context(), CSRFTokenContextKey, token)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// GetCSRFTokenFromContext returns the token placed by EnsureCSRFToken.
func GetCSRFTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenContextKey).(string)
	return token
}
