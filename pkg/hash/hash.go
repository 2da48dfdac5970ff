package hash

import "golang.org/x/crypto/bcrypt"

// Password hashes a plaintext password with bcrypt.
func Password(p string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	return string(bytes), err
}

// Check reports whether pass matches the stored bcrypt hash.
func Check(hashed, pass string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pass)) == nil
}
