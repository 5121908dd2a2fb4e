package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// DomainMessage prefixes message fingerprints. The version suffix allows
// the encoding to change later.
const DomainMessage = "protosql/message/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint identifies the table layout of md: name, table and every
// field in number order. Two descriptors with the same fingerprint map to
// the same columns.
func Fingerprint(md *MessageDescriptor) (string, error) {
	data, err := json.Marshal(md)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", md.Name, err)
	}
	return hashWithDomain(DomainMessage, data), nil
}

// MustFingerprint is like Fingerprint but panics on error.
func MustFingerprint(md *MessageDescriptor) string {
	fp, err := Fingerprint(md)
	if err != nil {
		panic(err)
	}
	return fp
}
