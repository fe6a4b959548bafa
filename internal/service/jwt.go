package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAccessExpiry is used when no access token lifetime is configured.
const DefaultAccessExpiry = 30 * time.Minute

// MinSecretLength is the shortest accepted signing secret, in bytes.
const MinSecretLength = 32

// ExpiryLeeway makes a token expire only once now is past exp. exp has
// one-second precision, so the token stays valid for the whole exp second.
const ExpiryLeeway = time.Second

// Claims represents JWT token claims. Subject carries the user's email.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTService defines JWT token operations.
type JWTService interface {
	GenerateAccessToken(subject string) (string, error)
	GenerateToken(subject string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetAccessExpiry() time.Duration
}

// JWTConfig is the signing material and policy handed to NewJWTService.
type JWTConfig struct {
	Secret       string
	Algorithm    string
	AccessExpiry time.Duration
	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
}

type jwtService struct {
	secret       []byte
	method       *jwt.SigningMethodHMAC
	accessExpiry time.Duration
	now          func() time.Time
}

// NewJWTService creates a new JWTService instance.
func NewJWTService(cfg JWTConfig) (JWTService, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}
	expiry := cfg.AccessExpiry
	if expiry <= 0 {
		expiry = DefaultAccessExpiry
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &jwtService{
		secret:       []byte(cfg.Secret),
		method:       method,
		accessExpiry: expiry,
		now:          now,
	}, nil
}

func (s *jwtService) GetAccessExpiry() time.Duration {
	return s.accessExpiry
}

func (s *jwtService) GenerateAccessToken(subject string) (string, error) {
	return s.GenerateToken(subject, s.accessExpiry)
}

func (s *jwtService) GenerateToken(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is empty")
	}
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}

	issuedAt := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}

// ValidateToken checks the signature before any claim. Every failure other
// than a clean expiry is reported as ErrInvalidToken.
func (s *jwtService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
		jwt.WithLeeway(ExpiryLeeway),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if token == nil || !token.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// RemainingLifetime returns how long ValidateToken keeps accepting the claims
// after now.
func (c *Claims) RemainingLifetime(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Add(ExpiryLeeway).Sub(now)
}
