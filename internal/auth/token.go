package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/solvaders/clubhub/internal/shared"
)

// Token verification outcomes. Expired tokens reuse the shared sentinel
// so the wire layer can emit its distinguishable body; the other two are
// collapsed into a plain 401 before they reach a client.
var (
	ErrTokenMalformed = errors.New("auth: token malformed")
	ErrTokenSignature = errors.New("auth: token signature mismatch")
)

// Claims is the payload embedded in every bearer token: subject id,
// timestamps, a unique token id and a snapshot of the global role at
// issue time.
type Claims struct {
	jwt.RegisteredClaims
	Role shared.Role `json:"role"`
}

// UserID parses the subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrTokenMalformed
	}
	return id, nil
}

// TokenCodec signs and verifies compact HS256 bearer tokens. The secret
// is process-wide configuration; rotating it invalidates all
// outstanding tokens.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec constructs a codec around the signing secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), now: time.Now}
}

// WithNow overrides the codec clock for tests.
func (c *TokenCodec) WithNow(fn func() time.Time) *TokenCodec {
	if fn != nil {
		c.now = fn
	}
	return c
}

// Issue serializes claims for the subject and signs them. Expiry is
// issued-at plus ttl in UTC epoch seconds.
func (c *TokenCodec) Issue(userID int64, role shared.Role, ttl time.Duration) (string, error) {
	now := c.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify recomputes the signature over the payload and checks expiry
// against the current time. Expiry validation is done here, not by the
// jwt library: a token is valid iff now < expiry, so a token presented
// at its exact expiry instant is already expired.
func (c *TokenCodec) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrTokenSignature
		}
		return nil, ErrTokenMalformed
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.ExpiresAt == nil {
		return nil, ErrTokenMalformed
	}
	if c.now().UTC().Unix() >= claims.ExpiresAt.Unix() {
		return nil, shared.ErrTokenExpired
	}
	return claims, nil
}
