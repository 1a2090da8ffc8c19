package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), effectiveCost(cost))
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

func effectiveCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

var (
	dummyHashMu sync.Mutex
	dummyHashes = map[int][]byte{}
)

func dummyHash(cost int) []byte {
	dummyHashMu.Lock()
	defer dummyHashMu.Unlock()
	if hash, ok := dummyHashes[cost]; ok {
		return hash
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	dummyHashes[cost] = hash
	return hash
}

// BurnComparison spends the same bcrypt work as a real check at the given cost. Used
// when no account matched so response time does not reveal whether an email is registered.
func BurnComparison(plain string, cost int) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(effectiveCost(cost)), []byte(plain))
}
