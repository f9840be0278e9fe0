package servit

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const defaultContentType = "application/octet-stream"

// builtinTypes pins the types of common web assets so results do not depend
// on the host's mime.types files.
var builtinTypes = map[string]string{
	".css":         "text/css",
	".csv":         "text/csv",
	".gif":         "image/gif",
	".gz":          "application/gzip",
	".htm":         "text/html",
	".html":        "text/html",
	".ico":         "image/x-icon",
	".jpeg":        "image/jpeg",
	".jpg":         "image/jpeg",
	".js":          "application/javascript",
	".json":        "application/json",
	".map":         "application/json",
	".md":          "text/markdown",
	".mjs":         "application/javascript",
	".mp3":         "audio/mpeg",
	".mp4":         "video/mp4",
	".otf":         "font/otf",
	".pdf":         "application/pdf",
	".png":         "image/png",
	".svg":         "image/svg+xml",
	".tar":         "application/x-tar",
	".ttf":         "font/ttf",
	".txt":         "text/plain",
	".wasm":        "application/wasm",
	".webmanifest": "application/manifest+json",
	".webp":        "image/webp",
	".woff":        "font/woff",
	".woff2":       "font/woff2",
	".xml":         "application/xml",
	".zip":         "application/zip",
}

// charsetTypes lists non-text/* types that are still textual.
var charsetTypes = map[string]bool{
	"application/javascript":    true,
	"application/json":          true,
	"application/manifest+json": true,
	"application/xml":           true,
}

// compressibleTypes lists types outside text/* worth compressing.
var compressibleTypes = map[string]bool{
	"application/javascript":        true,
	"application/json":              true,
	"application/manifest+json":     true,
	"application/wasm":              true,
	"application/x-javascript":      true,
	"application/xhtml+xml":         true,
	"application/xml":               true,
	"application/vnd.ms-fontobject": true,
	"font/otf":                      true,
	"font/ttf":                      true,
	"image/bmp":                     true,
	"image/svg+xml":                 true,
	"image/x-icon":                  true,
	"image/vnd.microsoft.icon":      true,
}

// ContentType returns the full Content-Type value for a file name, based on
// its extension. Text-like types carry a utf-8 charset parameter. Unknown
// extensions map to application/octet-stream.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return defaultContentType
	}

	typ, ok := builtinTypes[ext]
	if !ok {
		typ = mime.TypeByExtension(ext)
	}
	if typ == "" {
		return defaultContentType
	}

	mediaType, params, err := mime.ParseMediaType(typ)
	if err != nil {
		return defaultContentType
	}

	if _, ok := params["charset"]; !ok && isTextual(mediaType) {
		params["charset"] = "utf-8"
	}

	return mime.FormatMediaType(mediaType, params)
}

// Compressible reports whether a payload of the given Content-Type value is
// worth compressing. Already compressed formats such as images, archives and
// video report false.
func Compressible(contentType string) bool {
	mediaType := baseType(contentType)
	if mediaType == "" {
		return false
	}

	if strings.HasPrefix(mediaType, "text/") || compressibleTypes[mediaType] {
		return true
	}

	if strings.HasSuffix(mediaType, "+json") || strings.HasSuffix(mediaType, "+xml") {
		return true
	}

	// Anything mimetype files under text/plain, e.g. application/x-sh or
	// application/x-ndjson, is text on the wire.
	for m := mimetype.Lookup(mediaType); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}

	return false
}

func isTextual(mediaType string) bool {
	return strings.HasPrefix(mediaType, "text/") || charsetTypes[mediaType]
}

func baseType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mediaType)
}
