package preview

import (
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/zeebo/blake3"
)

// etagFor returns a strong ETag for a rendered page.
func etagFor(content []byte) string {
	h := blake3.Sum256(content)
	return `"` + hex.EncodeToString(h[:16]) + `"`
}

// notModified reports whether the request's If-None-Match lists etag.
func notModified(r *http.Request, etag string) bool {
	header := r.Header.Get("If-None-Match")
	if header == "" {
		return false
	}
	if strings.TrimSpace(header) == "*" {
		return true
	}
	for _, candidate := range strings.Split(header, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == etag {
			return true
		}
	}
	return false
}
