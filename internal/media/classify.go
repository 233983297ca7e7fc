package media

import (
	"mime"
	"strings"
)

// Storage key prefixes, derived from the upload's declared content type.
const (
	CategoryPhoto = "photo"
	CategoryAudio = "audio"
	CategoryVideo = "video"
	CategoryFile  = "file"
)

// Classify maps a declared content type and optional original filename to a
// storage category, the separator joining identifier and suffix, and the
// suffix itself. Image, audio, and video uploads keep only the filename's
// extension; everything else keeps the entire original filename as a
// sub-path segment so downloads preserve it. An empty suffix means the key
// carries the bare identifier.
func Classify(contentType, filename string) (category, sep, suffix string) {
	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}
	topLevel, _, _ := strings.Cut(mediaType, "/")

	switch topLevel {
	case "image":
		return CategoryPhoto, ".", extension(filename)
	case "audio":
		return CategoryAudio, ".", extension(filename)
	case "video":
		return CategoryVideo, ".", extension(filename)
	default:
		return CategoryFile, "/", filename
	}
}

// ObjectKey builds the storage key "<category>/<id><sep><suffix>", or
// "<category>/<id>" when no suffix is available. Upload and delivery agree
// on this convention by construction.
func ObjectKey(category, id, sep, suffix string) string {
	if suffix == "" {
		return category + "/" + id
	}
	return category + "/" + id + sep + suffix
}

// extension returns the substring after the last dot, or "" when the
// filename has no usable extension.
func extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return filename[idx+1:]
}
