package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a "<kind>:<digest>" key from the parts that define an
// entry's identity. The kind prefix survives hashing so backends can group
// graph, layout, and artifact entries separately.
func hashKey(kind string, parts ...any) string {
	payload, _ := json.Marshal(parts)
	sum := sha256.Sum256(payload)
	return kind + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 digest of data. Record files are identified
// by this digest, so an edited dataset never hits a stale graph entry.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
