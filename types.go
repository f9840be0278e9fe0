package servit

import (
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultMaxAge is the Cache-Control max-age, in seconds, used when none is configured.
	DefaultMaxAge    = 3600
	// DefaultIndexFile is served for paths ending in "/".
	DefaultIndexFile = "index.html"
)

// Options configures how a Service resolves and delivers files.
type Options struct {
	// RootDir is the directory files are served from. Relative values are
	// joined onto the working directory handed to NewResolver.
	RootDir string `json:"dir" mapstructure:"dir" yaml:"dir"`
	// MaxAge is the Cache-Control max-age, in seconds, sent with full responses.
	MaxAge int `json:"max_age" mapstructure:"max_age" yaml:"max_age" validate:"min=0"`
	// IndexFile is substituted for directory-style paths ending in "/".
	IndexFile string `json:"index_file" mapstructure:"index_file" yaml:"index_file" validate:"required,indexfile"`
	// Compress enables Accept-Encoding negotiation.
	Compress bool `json:"compress" mapstructure:"compress" yaml:"compress"`
}

// DefaultOptions returns the options used when nothing is overridden.
func DefaultOptions() Options {
	return Options{
		RootDir:   "",
		MaxAge:    DefaultMaxAge,
		IndexFile: DefaultIndexFile,
		Compress:  false,
	}
}

// Overrides holds caller supplied option values. Nil fields leave the
// corresponding Options field untouched.
type Overrides struct {
	RootDir   *string `json:"dir,omitempty" mapstructure:"dir" yaml:"dir,omitempty"`
	MaxAge    *int    `json:"max_age,omitempty" mapstructure:"max_age" yaml:"max_age,omitempty" validate:"omitempty,min=0"`
	IndexFile *string `json:"index_file,omitempty" mapstructure:"index_file" yaml:"index_file,omitempty" validate:"omitempty,indexfile"`
	Compress  *bool   `json:"compress,omitempty" mapstructure:"compress" yaml:"compress,omitempty"`
}

// Merge returns a copy of o with every non-nil field of ov applied.
func (o Options) Merge(ov Overrides) Options {
	if ov.RootDir != nil {
		o.RootDir = *ov.RootDir
	}
	if ov.MaxAge != nil {
		o.MaxAge = *ov.MaxAge
	}
	if ov.IndexFile != nil {
		o.IndexFile = *ov.IndexFile
	}
	if ov.Compress != nil {
		o.Compress = *ov.Compress
	}
	return o
}

// Validate checks that the options can be used to build a Service.
func (o Options) Validate() error {
	if o.MaxAge < 0 {
		return fmt.Errorf("validate options: %w: max age cannot be negative", ErrInvalidInput)
	}
	if !IsValidIndexFile(o.IndexFile) {
		return fmt.Errorf("validate options: %w: invalid index file %q", ErrInvalidInput, o.IndexFile)
	}
	return nil
}

// RequestView is the part of an incoming request the delivery pipeline reads.
type RequestView struct {
	Method          string
	Path            string
	IfModifiedSince string
	Range           string
	AcceptEncoding  string
}

// NewRequestView projects r onto a RequestView. The path is taken from
// r.URL.Path, which net/http has already percent-decoded.
func NewRequestView(r *http.Request) RequestView {
	return RequestView{
		Method:          r.Method,
		Path:            r.URL.Path,
		IfModifiedSince: r.Header.Get("If-Modified-Since"),
		Range:           r.Header.Get("Range"),
		AcceptEncoding:  r.Header.Get("Accept-Encoding"),
	}
}

// Location is a resolved request path.
type Location struct {
	// Path is the absolute filesystem path.
	Path string
	// Name is Path relative to the resolver's base directory.
	Name string
}

// Asset describes a regular file matched to a request.
type Asset struct {
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"mod_time"`
	ContentType string    `json:"content_type"`
}

// Range is an inclusive byte window.
type Range struct {
	Start int64
	End   int64
}

// Length returns the number of bytes in the window.
func (r Range) Length() int64 {
	return r.End - r.Start + 1
}

// ContentRange formats the Content-Range header value for a file of the given size.
func (r Range) ContentRange(size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, size)
}

// Algorithm names a content coding as it appears in Content-Encoding.
type Algorithm string

const (
	Identity Algorithm = "identity"
	Gzip     Algorithm = "gzip"
	Deflate  Algorithm = "deflate"
	Brotli   Algorithm = "br"
)

// Decision is the outcome of compression negotiation.
type Decision struct {
	Apply     bool
	Algorithm Algorithm
	// Vary reports whether the outcome depended on Accept-Encoding.
	Vary bool
}

// Delivery is the response plan produced by Service.Deliver.
type Delivery struct {
	Status   int
	Header   http.Header
	Asset    Asset
	Window   Range
	Encoding Algorithm
	// Body is false when no payload may be written (HEAD, 304, 416).
	Body bool
}
