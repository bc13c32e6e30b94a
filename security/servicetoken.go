package security

import (
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ServiceIdentity names the desk to the HR payroll service.
type ServiceIdentity struct {
	Subject  string
	Issuer   string
	Audience string
}

type ServiceClaims struct {
	UniqueName string `json:"unique_name"`
	jwt.RegisteredClaims
}

func CreateServiceToken(identity ServiceIdentity, secret []byte, issuedAt, expiresAt time.Time) (string, error) {
	claims := ServiceClaims{
		UniqueName: identity.Subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    identity.Issuer,
			Subject:   identity.Subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if identity.Audience != "" {
		claims.Audience = jwt.ClaimStrings{identity.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ServiceTokens mints HS256 bearer tokens and reuses each one until it is close to expiry.
type ServiceTokens struct {
	identity ServiceIdentity
	secret   []byte
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

func NewServiceTokens(base64Secret string, identity ServiceIdentity, ttl time.Duration) (*ServiceTokens, error) {
	secret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("decode token secret: %w", err)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("token secret is empty")
	}
	return &ServiceTokens{identity: identity, secret: secret, ttl: ttl, now: time.Now}, nil
}

func (s *ServiceTokens) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	// renew once less than a tenth of the lifetime is left
	if s.token != "" && now.Add(s.ttl/10).Before(s.expires) {
		return s.token, nil
	}

	expires := now.Add(s.ttl)
	token, err := CreateServiceToken(s.identity, s.secret, now, expires)
	if err != nil {
		return "", fmt.Errorf("sign service token: %w", err)
	}
	s.token, s.expires = token, expires
	return token, nil
}
