package servit

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/Motmedel/utils_go/pkg/http/parsing/headers/accept_encoding"
)

// CompressionThreshold is the smallest payload, in bytes, that gets compressed.
const CompressionThreshold = 1024

var noTransform = regexp.MustCompile(`(?i)(?:^|,)\s*no-transform\s*(?:,|$)`)

// supportedEncodings is the tie-break precedence when q-values are equal.
var supportedEncodings = []Algorithm{Brotli, Gzip, Deflate}

// Negotiator decides whether a response body is compressed.
type Negotiator struct {
	Enabled   bool
	Threshold int64
}

// NewNegotiator returns a Negotiator for opts using CompressionThreshold.
func NewNegotiator(opts Options) Negotiator {
	return Negotiator{Enabled: opts.Compress, Threshold: CompressionThreshold}
}

// Decide inspects the response headers built so far, the response content
// type and payload length, the request method and the client's
// Accept-Encoding value.
//
// Compression is skipped when disabled, for HEAD, for payloads under the
// threshold, when the response is already encoded, for incompressible types
// and when Cache-Control forbids transformation. Otherwise the result
// depends on Accept-Encoding and Vary is set.
func (n Negotiator) Decide(header http.Header, contentType string, length int64, method, acceptEncoding string) Decision {
	none := Decision{Algorithm: Identity}

	if !n.Enabled || method == http.MethodHead || length < n.Threshold {
		return none
	}

	if enc := header.Get("Content-Encoding"); enc != "" && !strings.EqualFold(enc, string(Identity)) {
		return none
	}

	if !Compressible(contentType) {
		return none
	}

	if noTransform.MatchString(header.Get("Cache-Control")) {
		return none
	}

	alg := PreferredEncoding(acceptEncoding)
	if alg == Identity {
		return Decision{Algorithm: Identity, Vary: true}
	}

	return Decision{Apply: true, Algorithm: alg, Vary: true}
}

// PreferredEncoding picks a supported content coding from an Accept-Encoding
// value.
//
// The coding with the highest q-value wins; equal q-values resolve as
// br, gzip, deflate. When the client accepts none of them but still accepts
// identity, gzip is used unless gzip was refused outright. Identity is
// returned when nothing usable remains.
func PreferredEncoding(acceptEncoding string) Algorithm {
	prefs := parseAcceptEncoding(acceptEncoding)

	best := Identity
	bestQ := 0.0
	for _, alg := range supportedEncodings {
		q := prefs.quality(string(alg))
		if q > bestQ {
			best, bestQ = alg, q
		}
	}

	if best != Identity {
		return best
	}

	if prefs.refuses(string(Gzip)) || prefs.quality(string(Identity)) == 0 {
		return Identity
	}

	return Gzip
}

type acceptEncoding map[string]float64

// parseAcceptEncoding reads the coding and q-value of every element. A
// header that does not match the Accept-Encoding grammar is treated like an
// absent one.
func parseAcceptEncoding(s string) acceptEncoding {
	prefs := acceptEncoding{}
	if strings.TrimSpace(s) == "" {
		return prefs
	}

	parsed, err := accept_encoding.ParseAcceptEncoding([]byte(s))
	if err != nil || parsed == nil {
		slog.Debug("ignoring malformed accept-encoding", "value", s, "error", err)
		return prefs
	}

	for _, enc := range parsed.Encodings {
		if enc == nil {
			continue
		}
		prefs[strings.ToLower(enc.Coding)] = float64(enc.QualityValue)
	}
	return prefs
}

// quality returns the q-value the client assigned to coding, falling back to
// the wildcard. identity is acceptable unless refused.
func (a acceptEncoding) quality(coding string) float64 {
	if q, ok := a[coding]; ok {
		return q
	}
	if q, ok := a["*"]; ok {
		return q
	}
	if coding == string(Identity) {
		return 1
	}
	return 0
}

// refuses reports whether coding was explicitly given q=0, directly or
// through the wildcard.
func (a acceptEncoding) refuses(coding string) bool {
	if q, ok := a[coding]; ok {
		return q == 0
	}
	q, ok := a["*"]
	return ok && q == 0
}
