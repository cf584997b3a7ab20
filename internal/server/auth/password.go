package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost matches the cost used when the existing password hashes
// were produced; changing it only affects newly stored hashes.
const DefaultBcryptCost = 10

// PasswordHasher produces salted one-way digests of secrets and verifies
// candidates against a stored digest. Implementations must embed a unique
// salt per call and compare without leaking timing information.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password string, hash string) bool
}

// BcryptHasher implements PasswordHasher on golang.org/x/crypto/bcrypt.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Check returns false on any mismatch; a mismatch is not an error.
func (h *BcryptHasher) Check(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
