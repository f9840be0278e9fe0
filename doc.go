// Package servit delivers files from a local directory over HTTP.
//
// A request flows through a fixed pipeline:
//
//   - Resolver: maps the request path below a root directory, substituting
//     the index file for directory-style paths and refusing traversal
//   - Probe: stats the file and evaluates If-Modified-Since
//   - ParseRange: plans a single byte range from the Range header
//   - ContentType: derives Content-Type from the file extension
//   - Negotiator: decides whether and how to compress from Accept-Encoding
//   - Pipeline: streams file → encoder → client with backpressure
//
// Service ties the stages together. Deliver returns a Delivery describing
// the status, headers and byte window; Open returns a reader over that
// window.
//
// # Example Usage
//
//	wd, _ := os.Getwd()
//	opts := servit.DefaultOptions().Merge(servit.Overrides{RootDir: &dir})
//	resolver := servit.NewResolver(wd, opts)
//
//	root, err := os.OpenRoot(resolver.Base())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	service, err := servit.NewService(filesystem.NewFileStorage(root), resolver, opts)
//
//	d, err := service.Deliver(ctx, servit.NewRequestView(r))
//
// See the http package for the net/http handler built on Service.
package servit
