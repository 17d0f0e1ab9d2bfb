package auth

import (
	"errors"
	"net/http"
	"os"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInternalError   = errors.New("internal server error")
)

// The planner is single-user: one password hash in the environment guards
// the whole API. There is no user table.
const ownerUserID = "owner"

type Service interface {
	Login(password string) (string, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	jwtManager   JWTManagerInterface
	passwordHash string
}

func NewService(jwtManager JWTManagerInterface) Service {
	return &service{
		jwtManager:   jwtManager,
		passwordHash: os.Getenv("APP_PASSWORD_HASH"),
	}
}

// Login checks the password against the configured bcrypt hash and issues
// an access token.
func (s *service) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}
	return s.jwtManager.GenerateAccessJWT(ownerUserID, defaultJWTDuration)
}

// HashPassword is the helper used when provisioning APP_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
