package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds "namespace:digest" where digest covers the JSON encoding
// of parts. Option structs only hold numbers, strings and bools, so the
// encoding cannot fail.
func hashKey(namespace string, parts ...any) string {
	raw, _ := json.Marshal(parts)
	return namespace + ":" + Hash(raw)
}
