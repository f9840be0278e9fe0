package servit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// Service plans and opens file deliveries for one set of Options.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	storage    FileStorage
	resolver   *Resolver
	negotiator Negotiator
	opts       Options
}

// NewService creates a Service serving files from storage, which must be
// rooted at resolver.Base().
func NewService(storage FileStorage, resolver *Resolver, opts Options) (*Service, error) {
	if storage == nil || resolver == nil {
		return nil, fmt.Errorf("new service: %w: storage and resolver are required", ErrInvalidInput)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("new service: %w", err)
	}

	return &Service{
		storage:    storage,
		resolver:   resolver,
		negotiator: NewNegotiator(opts),
		opts:       opts,
	}, nil
}

// Options returns the options the service was built with.
func (s *Service) Options() Options {
	return s.opts
}

// Deliver plans the response to req.
//
// The request is resolved, the file probed and, unless the client copy is
// fresh (304), a full (200) or ranged (206) response is planned with its
// content type and compression decision. Unsatisfiable ranges plan a 416.
// Paths outside the root and files that cannot be stat'ed return an error
// matching ErrNotFound; callers answer those with 404.
func (s *Service) Deliver(ctx context.Context, req RequestView) (Delivery, error) {
	if err := ctx.Err(); err != nil {
		return Delivery{}, fmt.Errorf("deliver: %w", err)
	}

	loc, err := s.resolver.Resolve(req.Path)
	if err != nil {
		return Delivery{}, fmt.Errorf("deliver: %w", err)
	}

	asset, fresh, err := Probe(ctx, s.storage, loc, req.IfModifiedSince)
	if err != nil {
		return Delivery{}, fmt.Errorf("deliver: %w", err)
	}

	if fresh {
		return Delivery{
			Status:   http.StatusNotModified,
			Header:   http.Header{},
			Asset:    asset,
			Encoding: Identity,
		}, nil
	}

	d := Delivery{
		Status:   http.StatusOK,
		Header:   http.Header{},
		Asset:    asset,
		Encoding: Identity,
		Body:     req.Method != http.MethodHead,
	}

	window, ranged, err := ParseRange(req.Range, asset.Size)
	switch {
	case errors.Is(err, ErrRangeNotSatisfiable):
		d.Status = http.StatusRequestedRangeNotSatisfiable
		d.Header.Set("Content-Range", fmt.Sprintf("bytes */%d", asset.Size))
		d.Body = false
		return d, nil
	case ranged:
		d.Status = http.StatusPartialContent
		d.Window = window
		d.Header.Set("Content-Range", window.ContentRange(asset.Size))
		d.Header.Set("Accept-Ranges", "bytes")
	default:
		d.Window = Range{Start: 0, End: asset.Size - 1}
		d.Header.Set("Cache-Control", "max-age="+strconv.Itoa(s.opts.MaxAge))
		d.Header.Set("Last-Modified", asset.ModTime.UTC().Format(http.TimeFormat))
	}

	d.Header.Set("Content-Type", asset.ContentType)

	length := d.Window.Length()
	decision := s.negotiator.Decide(d.Header, asset.ContentType, length, req.Method, req.AcceptEncoding)
	if decision.Vary {
		d.Header.Add("Vary", "Accept-Encoding")
	}
	if decision.Apply {
		d.Encoding = decision.Algorithm
		d.Header.Set("Content-Encoding", string(decision.Algorithm))
	} else {
		d.Header.Set("Content-Length", strconv.FormatInt(length, 10))
	}

	return d, nil
}

// Open opens the file planned by d and positions it on d.Window. The
// returned reader yields exactly d.Window.Length() bytes at most; the caller
// closes it.
func (s *Service) Open(ctx context.Context, d Delivery) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	f, err := s.storage.Open(ctx, d.Asset.Name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", d.Asset.Name, ErrNotFound, err)
	}

	if d.Window.Start > 0 {
		if _, err := f.Seek(d.Window.Start, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("open %s: seek: %w", d.Asset.Name, err)
		}
	}

	return &windowReader{
		Reader: io.LimitReader(f, max(d.Window.Length(), 0)),
		Closer: f,
	}, nil
}

type windowReader struct {
	io.Reader
	io.Closer
}
