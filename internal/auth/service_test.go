package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubJWTManager struct {
	token      string
	validID    string
	invalidErr error
}

func (s *stubJWTManager) GenerateAccessJWT(userID string, duration time.Duration) (string, error) {
	return s.token, nil
}

func (s *stubJWTManager) ValidateAccessToken(tokenString string) (string, error) {
	if s.invalidErr != nil {
		return "", s.invalidErr
	}
	return s.validID, nil
}

func TestLogin(t *testing.T) {
	hash, err := HashPassword("correct horse")
	assert.NoError(t, err)

	svc := &service{
		jwtManager:   &stubJWTManager{token: "signed-token"},
		passwordHash: hash,
	}

	token, err := svc.Login("correct horse")
	assert.NoError(t, err)
	assert.Equal(t, "signed-token", token)

	_, err = svc.Login("wrong password")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestJWTAccessTokenMiddleware(t *testing.T) {
	svc := &service{jwtManager: &stubJWTManager{validID: ownerUserID}}
	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, _ = r.Context().Value("userID").(string)
		w.WriteHeader(http.StatusOK)
	})
	protected := svc.JWTAccessTokenMiddleware()(next)

	req := httptest.NewRequest(http.MethodGet, "/api/protected/transactions", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, ownerUserID, seenUserID)

	missing := httptest.NewRequest(http.MethodGet, "/api/protected/transactions", nil)
	w = httptest.NewRecorder()
	protected.ServeHTTP(w, missing)
	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)

	malformed := httptest.NewRequest(http.MethodGet, "/api/protected/transactions", nil)
	malformed.Header.Set("Authorization", "some-token")
	w = httptest.NewRecorder()
	protected.ServeHTTP(w, malformed)
	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)

	invalid := httptest.NewRequest(http.MethodGet, "/api/protected/transactions", nil)
	invalid.Header.Set("Authorization", "Bearer bad-token")
	w = httptest.NewRecorder()
	svc.jwtManager = &stubJWTManager{invalidErr: ErrInvalidJWTToken}
	protected.ServeHTTP(w, invalid)
	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}
