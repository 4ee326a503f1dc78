package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/offerlens/offerql/internal/queryir"
)

// DomainQuery is the domain-separation prefix for query fingerprints.
// The version suffix allows a future algorithm migration without
// colliding with existing fingerprints.
const DomainQuery = "offerql/query/v1"

// hashWithDomain computes SHA256(domain || 0x00 || data). The null
// separator removes any ambiguity between domain and payload bytes.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes the content-addressed identity of a query: the
// domain-separated hash of its canonical JSON. Structurally equal trees
// fingerprint identically no matter how their documents were keyed or
// built.
func Fingerprint(q *queryir.Query) (string, error) {
	data, err := MarshalCanonical(q)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hashWithDomain(DomainQuery, data), nil
}
