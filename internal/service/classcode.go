package service

import (
	"crypto/rand"
	"fmt"
)

// ClassCodeLength is the fixed length of join codes handed out to students.
const ClassCodeLength = 6

// classCodeCharset excludes characters that are easy to misread when a code
// is written on a whiteboard (0/O, 1/I).
const classCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateClassCode returns a random join code of ClassCodeLength characters.
func GenerateClassCode() (string, error) {
	buf := make([]byte, ClassCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = classCodeCharset[int(b)%len(classCodeCharset)]
	}
	return string(buf), nil
}
