package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	user *AuthUser
	err  error
}

func (s *stubResolver) ResolveUser(ctx context.Context, userID string) (*AuthUser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("test-secret", "studelie", 7)
	token, err := tm.GenerateToken("user-1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		resolver   *stubResolver
		wantStatus int
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + token,
			resolver:   &stubResolver{user: &AuthUser{ID: "user-1", Name: "Alice"}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			resolver:   &stubResolver{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "Token abc",
			resolver:   &stubResolver{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer garbage",
			resolver:   &stubResolver{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "user deleted since token issued",
			authHeader: "Bearer " + token,
			resolver:   &stubResolver{err: NewNotFoundError("user not found")},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser *AuthUser
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(tm, tt.resolver)(next)

			req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, gotUser)
				assert.Equal(t, "user-1", gotUser.ID)
			}
		})
	}
}
