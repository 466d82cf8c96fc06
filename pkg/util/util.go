// Package util holds small helpers shared by Aretha tools.
package util

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/google/uuid"
)

// MD5Hex returns the lowercase hex MD5 digest of the UTF-8 bytes of s.
func MD5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// UUIDFromText derives a UUID from text.
//
// Empty text yields a random UUID. Text that already parses as a UUID is
// returned as that UUID. Anything else yields a name-based version 3 UUID
// computed directly over the bytes of text, without a namespace.
func UUIDFromText(text string) uuid.UUID {
	if text == "" {
		return uuid.New()
	}
	if id, err := uuid.Parse(text); err == nil {
		return id
	}
	sum := md5.Sum([]byte(text))
	sum[6] = sum[6]&0x0f | 0x30
	sum[8] = sum[8]&0x3f | 0x80
	id, _ := uuid.FromBytes(sum[:])
	return id
}
