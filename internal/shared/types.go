package shared

import (
	"crypto/rand"
	"encoding/hex"
)

const (
	PrefixSession  = "cs_"
	PrefixMessage  = "msg_"
	PrefixSnapshot = "ca_"
)

func NewID(prefix string) string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return prefix + hex.EncodeToString(b)
}
