package auth

import (
	"crypto/rand"
	"math/big"
)

const (
	TeacherCodeLength   = 9
	teacherCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewTeacherCode draws a random uppercase base-36 delegation code.
func NewTeacherCode() (string, error) {
	max := big.NewInt(int64(len(teacherCodeAlphabet)))
	code := make([]byte, TeacherCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = teacherCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
