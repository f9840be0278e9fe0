package servit

import (
	"context"
	"fmt"
	"io"
	"sync"
)

const copyBufferSize = 32 * 1024

var copyBuffers = sync.Pool{
	New: func() any {
		b := make([]byte, copyBufferSize)
		return &b
	},
}

// Pipeline streams a body from Source to a sink, through an encoder when
// Encoding is not Identity.
//
// Each Write blocks until the sink accepts the data, so a slow client pauses
// reading and compression instead of growing buffers.
type Pipeline struct {
	Source   io.ReadCloser
	Encoding Algorithm
}

// Run copies the body into sink and returns the number of source bytes
// consumed. The source is always closed. The encoder is closed on success;
// on failure it is discarded without writing a trailer so the client sees a
// truncated stream rather than a valid short one. Errors match
// ErrStreamFailure.
func (p Pipeline) Run(ctx context.Context, sink io.Writer) (n int64, err error) {
	defer func() {
		if closeErr := p.Source.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("stream: %w: close source: %w", ErrStreamFailure, closeErr)
		}
	}()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, fmt.Errorf("stream: %w: %w", ErrStreamFailure, ctxErr)
	}

	bufp := copyBuffers.Get().(*[]byte)
	defer copyBuffers.Put(bufp)

	src := &ctxReader{ctx: ctx, r: p.Source}

	if p.Encoding == "" || p.Encoding == Identity {
		n, err = io.CopyBuffer(sink, src, *bufp)
		if err != nil {
			return n, fmt.Errorf("stream: %w: %w", ErrStreamFailure, err)
		}
		return n, nil
	}

	enc, err := AcquireEncoder(p.Encoding, sink)
	if err != nil {
		return 0, fmt.Errorf("stream: %w: %w", ErrStreamFailure, err)
	}
	defer ReleaseEncoder(p.Encoding, enc)

	n, err = io.CopyBuffer(enc, src, *bufp)
	if err != nil {
		return n, fmt.Errorf("stream: %w: %w", ErrStreamFailure, err)
	}

	if err = enc.Close(); err != nil {
		return n, fmt.Errorf("stream: %w: close encoder: %w", ErrStreamFailure, err)
	}

	return n, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
