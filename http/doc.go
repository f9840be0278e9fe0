// Package http exposes servit over net/http.
//
// The handler answers GET and HEAD for any path with one of:
//
//   - 200 with the whole file, optionally compressed
//   - 206 with a single byte range
//   - 304 when If-Modified-Since shows the client copy is current
//   - 404 with an empty body for anything that cannot be served
//   - 416 when a range starts past the end of the file
//
// Other methods get 405 from the router.
//
// # Profiles
//
// Several option sets can be served side by side. Each profile is a
// Service built from its own Options; the query parameter named by
// HandlerConfig.ProfileParam picks one per request and unknown names fall
// back to the default service:
//
//	cfg := http.HandlerConfig{
//	    ProfileParam: "conf",
//	    Profiles:     map[string]http.Service{"2": compressed},
//	}
//	handler := http.NewHandler(&cfg, plain)
//	http.ListenAndServe(":3000", handler.Router())
//
// # Middleware
//
// RequestLogger assigns every request an X-Request-Id and logs method, path,
// status, size and duration through slog. CORS headers are added with
// go-chi/cors when CORSConfig.Enabled is set.
package http
