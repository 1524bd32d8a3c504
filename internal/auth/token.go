package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers bad signatures, malformed tokens, expiry and wrong
// token flavor alike. Callers must not be able to tell them apart.
var ErrInvalidToken = errors.New("token inválido o expirado")

// Token flavors, carried in the "typ" claim.
const (
	ClaimType = "typ"

	TypeSession         = "session"
	TypeLocation        = "location"
	TypeLocationRefresh = "location_refresh"
	TypeClient          = "client"
)

// TokenCodec signs and verifies HS256 tokens over arbitrary claim maps.
type TokenCodec struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

func NewTokenCodec(secret string, defaultTTL time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), defaultTTL: defaultTTL, now: time.Now}
}

// WithClock returns a copy of the codec that reads time from now.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	cp := *c
	cp.now = now
	return &cp
}

func (c *TokenCodec) DefaultTTL() time.Duration { return c.defaultTTL }

// Issue signs claims with the default ttl.
func (c *TokenCodec) Issue(claims Claims) (string, error) {
	return c.IssueWithTTL(claims, c.defaultTTL)
}

// IssueWithTTL signs claims adding iat and exp. A ttl of zero yields a token
// that is already expired.
func (c *TokenCodec) IssueWithTTL(claims Claims, ttl time.Duration) (string, error) {
	now := c.now()
	mc := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(ttl).Unix()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(c.secret)
}

// Verify checks signature and expiry and returns the claims.
func (c *TokenCodec) Verify(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return Claims(mc), nil
}

// VerifyType is Verify plus a check that the token is of the given flavor.
func (c *TokenCodec) VerifyType(token, typ string) (Claims, error) {
	claims, err := c.Verify(token)
	if err != nil {
		return nil, err
	}
	if t, _ := claims.String(ClaimType); t != typ {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Decode reads the claims without checking signature or expiry. Never use
// the result for an authorization decision. Returns nil if malformed.
func (c *TokenCodec) Decode(token string) Claims {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil
	}
	return Claims(mc)
}
