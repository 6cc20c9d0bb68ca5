package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

type stubUserService struct {
	UserService
	registerFn func(ctx context.Context, input RegisterInput) (*dbmongo.User, string, error)
	loginFn    func(ctx context.Context, email, password string) (*dbmongo.User, string, error)
}

func (s *stubUserService) Register(ctx context.Context, input RegisterInput) (*dbmongo.User, string, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*dbmongo.User, string, error) {
	return s.loginFn(ctx, email, password)
}

func TestHandler_Register(t *testing.T) {
	svc := &stubUserService{
		registerFn: func(ctx context.Context, input RegisterInput) (*dbmongo.User, string, error) {
			if input.Email == "taken@example.com" {
				return nil, "", common.NewConflictError("email already registered")
			}
			return &dbmongo.User{ID: primitive.NewObjectID(), Name: input.Name, Email: input.Email}, "tok123", nil
		},
	}
	handler := NewHandler(svc)

	t.Run("created", func(t *testing.T) {
		body, _ := json.Marshal(RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Register(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "tok123", resp["token"])
		user := resp["user"].(map[string]interface{})
		assert.Equal(t, "Alice", user["name"])
		_, hasPassword := user["password"]
		assert.False(t, hasPassword, "password must never be serialized")
	})

	t.Run("duplicate email", func(t *testing.T) {
		body, _ := json.Marshal(RegisterInput{Name: "Bob", Email: "taken@example.com", Password: "secret1"})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()

		handler.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Login(t *testing.T) {
	svc := &stubUserService{
		loginFn: func(ctx context.Context, email, password string) (*dbmongo.User, string, error) {
			if password != "secret1" {
				return nil, "", common.NewUnauthorizedError("invalid password")
			}
			return &dbmongo.User{ID: primitive.NewObjectID(), Email: email}, "tok123", nil
		},
	}
	handler := NewHandler(svc)

	t.Run("success", func(t *testing.T) {
		body := []byte(`{"email":"alice@example.com","password":"secret1"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		body := []byte(`{"email":"alice@example.com","password":"nope"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_Verify(t *testing.T) {
	handler := NewHandler(&stubUserService{})

	t.Run("with identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
		ctx := common.ContextWithUser(req.Context(), &common.AuthUser{ID: "u1", Name: "Alice"})
		rec := httptest.NewRecorder()

		handler.Verify(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Alice")
	})

	t.Run("without identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
		rec := httptest.NewRecorder()

		handler.Verify(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
