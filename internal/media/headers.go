package media

import (
	"net/http"
	"strconv"

	"github.com/mediapub/service/internal/storage"
)

// defaultCacheControl is the fallback cache lifetime for stored objects.
// Objects are immutable once written, so a long lifetime is safe; an
// object's own cache-control header overrides it.
const defaultCacheControl = "public, max-age=31536000"

// writeObjectHeaders reconstructs the client-visible headers for a stored
// object: the default cache lifetime first, then the object's own headers as
// an ordered list of (name, value) pairs applied when present. A permissive
// cross-origin header is always added. Hop-by-hop headers such as Connection
// are never part of ObjectInfo and so can never leak downstream.
func writeObjectHeaders(w http.ResponseWriter, info *storage.ObjectInfo) {
	h := w.Header()
	h.Set("Cache-Control", defaultCacheControl)

	pairs := []struct {
		name  string
		value string
	}{
		{"Cache-Control", info.CacheControl},
		{"Content-Disposition", info.ContentDisposition},
		{"Content-Encoding", info.ContentEncoding},
		{"Content-Language", info.ContentLanguage},
		{"Content-Type", info.ContentType},
		{"ETag", info.ETag},
	}
	for _, p := range pairs {
		if p.value != "" {
			h.Set(p.name, p.value)
		}
	}

	if !info.LastModified.IsZero() {
		h.Set("Last-Modified", info.LastModified.UTC().Format(http.TimeFormat))
	}
	if info.Size > 0 {
		h.Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}

	h.Set("Access-Control-Allow-Origin", "*")
	h.Del("Connection")
}
