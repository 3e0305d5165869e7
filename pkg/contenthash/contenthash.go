// Package contenthash provides the content-addressing scheme shared by
// document deduplication and the research cache: hex SHA-256 digests
// over raw bytes or over a category-qualified normalized query.
package contenthash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sum returns the hex SHA-256 digest of data. Identical bytes always
// produce the same digest; empty input hashes deterministically too.
func Sum(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}

// QueryKey derives the cache key for an external research query.
// The query is case-folded and trimmed so "  Cloud Migration " and
// "cloud migration" share one cache entry within a category.
func QueryKey(category, query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	return Sum([]byte(category + ":" + normalized))
}
