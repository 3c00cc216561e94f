package auth

import "golang.org/x/crypto/bcrypt"

// Hasher produces and verifies salted bcrypt digests. The cost factor is
// tunable so tests can run cheap while production stays slow.
type Hasher struct {
	cost int
}

// NewHasher constructs a Hasher, clamping the cost to bcrypt's bounds.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash returns a salted one-way digest of the plaintext. The salt is
// generated per call and embedded in the digest.
func (h Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the digest. A malformed
// digest verifies false rather than erroring past the boundary.
func (h Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
