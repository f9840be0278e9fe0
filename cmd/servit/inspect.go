package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sagarc03/servit"
	"github.com/sagarc03/servit/config"
	"github.com/sagarc03/servit/report"
)

var (
	inspectMethod          string
	inspectRange           string
	inspectAcceptEncoding  string
	inspectIfModifiedSince string
	inspectProfile         string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>",
	Short: "Show how a request would be answered",
	Long: `Plan the response for a request path without starting a server.

Prints the status, the file the path resolves to, the byte window, the
negotiated encoding and every response header.`,
	Example: `  servit inspect /
  servit inspect /app.js --accept-encoding "br, gzip" --compress
  servit inspect /video.mp4 --range bytes=0-1023
  servit inspect /index.html --if-modified-since "Fri, 10 May 2024 08:30:15 GMT"`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectMethod, "method", "X", http.MethodGet, "request method, GET or HEAD")
	inspectCmd.Flags().StringVar(&inspectRange, "range", "", "Range header value")
	inspectCmd.Flags().StringVar(&inspectAcceptEncoding, "accept-encoding", "", "Accept-Encoding header value")
	inspectCmd.Flags().StringVar(&inspectIfModifiedSince, "if-modified-since", "", "If-Modified-Since header value")
	inspectCmd.Flags().StringVar(&inspectProfile, "profile", "", "plan the request against a named profile")
}

// newRequestView builds the request inspect plans for.
func newRequestView(method, path string) (servit.RequestView, error) {
	method = strings.ToUpper(method)
	if method != http.MethodGet && method != http.MethodHead {
		return servit.RequestView{}, fmt.Errorf("unsupported method %q: must be GET or HEAD", method)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return servit.RequestView{
		Method:          method,
		Path:            path,
		IfModifiedSince: inspectIfModifiedSince,
		Range:           inspectRange,
		AcceptEncoding:  inspectAcceptEncoding,
	}, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	formatter := getFormatter()

	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	req, err := newRequestView(inspectMethod, args[0])
	if err != nil {
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	opts, err := optionsFor(cfg, inspectProfile)
	if err != nil {
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	s, err := openSite(workDir, opts)
	if err != nil {
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}
	defer func() { _ = s.Close() }()

	d, err := s.service.Deliver(cmd.Context(), req)

	return formatter.FormatInspection(os.Stdout, &report.Inspection{
		Request:  req,
		Delivery: d,
		Err:      err,
	})
}
