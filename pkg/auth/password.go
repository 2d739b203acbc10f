package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is compared against when login hits an unknown email, so the
// request costs a bcrypt verification either way and timing does not
// reveal whether the email exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("staffd-timing-pad"), bcrypt.DefaultCost)

// HashPassword hashes a password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
