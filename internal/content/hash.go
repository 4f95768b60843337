package content

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// SiteHash computes a deterministic hash over the document set: relative
// paths plus per-document content hashes. Used for cheap change detection
// against a previously built index.
func SiteHash(docs []*Document) string {
	if len(docs) == 0 {
		h := sha256.Sum256([]byte("empty-content-set"))
		return hex.EncodeToString(h[:])
	}

	entries := make([]string, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, fmt.Sprintf("%s|%s|%s", d.RelPath, d.Kind, d.Hash))
	}
	sort.Strings(entries)

	h := sha256.New()
	for _, e := range entries {
		h.Write([]byte(e))
		h.Write([]byte("\n"))
	}
	return hex.EncodeToString(h.Sum(nil))
}
