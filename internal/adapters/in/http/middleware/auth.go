package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is the firebase auth client alias used across DI.
type FirebaseAuthClient = fbauth.Client

var (
	ctxKeyAccountID = ctxKey{name: "accountId"}
	ctxKeyEmail     = ctxKey{name: "email"}
)

// Auth verifies "Authorization: Bearer <ID_TOKEN>" and stores the account uid
// (and email when present in the claims) in the request context. Wishlist and
// order routes sit behind this; catalog and cart do not.
type Auth struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *Auth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.FirebaseAuth == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}
		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyAccountID, uid)
		if emailRaw, ok := token.Claims["email"]; ok {
			if e, ok2 := emailRaw.(string); ok2 && strings.TrimSpace(e) != "" {
				ctx = context.WithValue(ctx, ctxKeyEmail, strings.TrimSpace(e))
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccountIDFrom returns the authenticated account id, "" when absent.
func AccountIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyAccountID).(string); ok {
		return v
	}
	return ""
}

// EmailFrom returns the authenticated account email, "" when absent.
func EmailFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyEmail).(string); ok {
		return v
	}
	return ""
}

// WithAccount is a test helper to seed identity into a context.
func WithAccount(ctx context.Context, accountID, email string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyAccountID, accountID)
	if email != "" {
		ctx = context.WithValue(ctx, ctxKeyEmail, email)
	}
	return ctx
}
