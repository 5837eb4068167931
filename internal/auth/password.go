package auth

import "golang.org/x/crypto/bcrypt"

const minPasswordLength = 8

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidPassword reports whether password is long enough to be accepted.
func ValidPassword(password string) bool {
	return len(password) >= minPasswordLength
}
