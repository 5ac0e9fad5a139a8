// Package auth turns bearer tokens issued by the account service into identities.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
)

// Claims is the token payload shared with the account service.
type Claims struct {
	Role    string `json:"role"`
	StoreID string `json:"store_id,omitempty"`
	jwt.RegisteredClaims
}

// Config holds the HMAC secret and the expected issuer.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// JWT validates and, for tooling and tests, issues HS256 tokens.
type JWT struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWT builds a JWT authenticator. An empty secret is a configuration error.
func NewJWT(cfg Config) (*JWT, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("%w: jwt secret is empty", apperr.ErrConfiguration)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &JWT{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

// Authenticate validates a token, with or without the "Bearer " prefix.
func (j *JWT) Authenticate(ctx context.Context, credentials string) (domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Identity{}, err
	}
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(credentials), "Bearer "))
	if raw == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing token", apperr.ErrUnauthorized)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, opts...)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}
	if !token.Valid {
		return domain.Identity{}, fmt.Errorf("%w: invalid token", apperr.ErrUnauthorized)
	}

	id := domain.Identity{
		UserID:  claims.Subject,
		Role:    domain.Role(strings.ToLower(claims.Role)),
		StoreID: claims.StoreID,
	}
	if id.UserID == "" || !id.Role.Valid() {
		return domain.Identity{}, fmt.Errorf("%w: token without subject or known role", apperr.ErrUnauthorized)
	}
	if id.Role == domain.RoleShopkeeper && id.StoreID == "" {
		return domain.Identity{}, fmt.Errorf("%w: shopkeeper token without store", apperr.ErrUnauthorized)
	}
	return id, nil
}

// Issue signs a token for id.
func (j *JWT) Issue(id domain.Identity) (string, error) {
	now := j.now()
	claims := &Claims{
		Role:    string(id.Role),
		StoreID: id.StoreID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}
