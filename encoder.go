package servit

import (
	"fmt"
	"io"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Encoder is a streaming compressor that can be re-targeted with Reset.
type Encoder interface {
	io.WriteCloser
	Reset(w io.Writer)
}

var encoderPools = map[Algorithm]*sync.Pool{
	Gzip: {New: func() any {
		w, _ := gzip.NewWriterLevel(io.Discard, gzip.DefaultCompression)
		return w
	}},
	Deflate: {New: func() any {
		w, _ := zlib.NewWriterLevel(io.Discard, zlib.DefaultCompression)
		return w
	}},
	Brotli: {New: func() any {
		return brotli.NewWriterLevel(io.Discard, brotli.DefaultCompression)
	}},
}

// AcquireEncoder returns a pooled encoder for alg writing to w. Return it
// with ReleaseEncoder once it is closed or abandoned.
//
// The "deflate" content coding is the zlib format, matching what browsers
// expect.
func AcquireEncoder(alg Algorithm, w io.Writer) (Encoder, error) {
	pool, ok := encoderPools[alg]
	if !ok {
		return nil, fmt.Errorf("acquire encoder: %w: unsupported algorithm %q", ErrInvalidInput, alg)
	}

	enc := pool.Get().(Encoder)
	enc.Reset(w)
	return enc, nil
}

// ReleaseEncoder detaches enc from its destination and returns it to the
// pool. Pending output is dropped if enc was not closed.
func ReleaseEncoder(alg Algorithm, enc Encoder) {
	pool, ok := encoderPools[alg]
	if !ok || enc == nil {
		return
	}
	enc.Reset(io.Discard)
	pool.Put(enc)
}
