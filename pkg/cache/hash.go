package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey joins prefix and the SHA-256 of the JSON-encoded parts, so two
// render requests share a key only when the street hash and every render
// option match.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. The pipeline hashes the JSON street
// file of a street, so any change to its length or buildings yields a new
// artifact key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
