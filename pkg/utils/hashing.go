package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func ComparePasswords(hashedPassword string, plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
}

// GenerateSecureToken returns a hex-encoded random token of the given byte length.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}

	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}

// GenerateOtpCode returns a numeric one-time code of the given length,
// leading zeros included. The code space for length 6 is 10^6; callers
// store the code and enforce its lifetime and attempt budget.
func GenerateOtpCode(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid OTP length")
	}

	otp := make([]byte, length)
	buf := make([]byte, 1)
	for i := 0; i < length; {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		// Bytes 250..255 would make digits 0-5 slightly more likely than
		// 6-9; redraw them so every digit is uniform.
		if buf[0] >= 250 {
			continue
		}
		otp[i] = '0' + buf[0]%10
		i++
	}

	return string(otp), nil
}
