package auth

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor for new digests.
const PasswordCost = 10

// HashPassword returns a bcrypt digest of password with a fresh random salt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches digest. A malformed digest
// never matches.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
