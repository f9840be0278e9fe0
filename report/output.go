package report

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sagarc03/servit"
)

// Listing is the result of walking a served directory.
type Listing struct {
	Root   string
	Assets []servit.Asset
}

// TotalSize returns the sum of all asset sizes.
func (l *Listing) TotalSize() int64 {
	var total int64
	for i := range l.Assets {
		total += l.Assets[i].Size
	}
	return total
}

// Inspection pairs a simulated request with the delivery planned for it.
// Err is set when the request would be answered with 404.
type Inspection struct {
	Request  servit.RequestView
	Delivery servit.Delivery
	Err      error
}

// Formatter formats results for output.
type Formatter interface {
	FormatListing(w io.Writer, listing *Listing) error
	FormatInspection(w io.Writer, in *Inspection) error
	FormatError(w io.Writer, err error) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

// FormatListing formats a directory listing as human-readable text.
// In quiet mode only names are printed.
func (f *HumanFormatter) FormatListing(w io.Writer, listing *Listing) error {
	if f.Quiet {
		for i := range listing.Assets {
			_, _ = fmt.Fprintln(w, listing.Assets[i].Name)
		}
		return nil
	}

	if len(listing.Assets) == 0 {
		_, _ = fmt.Fprintf(w, "No files found in %s\n", listing.Root)
		return nil
	}

	// Calculate column widths
	maxNameLen := 4 // "NAME"
	maxTypeLen := 4 // "TYPE"
	for i := range listing.Assets {
		maxNameLen = max(maxNameLen, len(listing.Assets[i].Name))
		maxTypeLen = max(maxTypeLen, len(listing.Assets[i].ContentType))
	}
	maxNameLen = min(maxNameLen, 60)

	_, _ = fmt.Fprintf(w, "%-*s  %10s  %-*s  %-8s  %s\n", maxNameLen, "NAME", "SIZE", maxTypeLen, "TYPE", "COMPRESS", "MODIFIED")
	_, _ = fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
		strings.Repeat("-", maxNameLen),
		strings.Repeat("-", 10),
		strings.Repeat("-", maxTypeLen),
		strings.Repeat("-", 8),
		strings.Repeat("-", 19),
	)

	for i := range listing.Assets {
		a := &listing.Assets[i]
		name := a.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}
		_, _ = fmt.Fprintf(w, "%-*s  %10s  %-*s  %-8s  %s\n",
			maxNameLen,
			name,
			formatSize(a.Size),
			maxTypeLen,
			a.ContentType,
			yesNo(servit.Compressible(a.ContentType) && a.Size >= servit.CompressionThreshold),
			a.ModTime.Format("2006-01-02 15:04:05"),
		)
	}

	_, _ = fmt.Fprintf(w, "\n%s file(s) (%s total)\n", humanize.Comma(int64(len(listing.Assets))), formatSize(listing.TotalSize()))

	return nil
}

// FormatInspection formats a planned delivery as human-readable text.
func (f *HumanFormatter) FormatInspection(w io.Writer, in *Inspection) error {
	req := in.Request
	if in.Err != nil {
		_, _ = fmt.Fprintf(w, "%s %s -> %d %s\n", req.Method, req.Path, http.StatusNotFound, http.StatusText(http.StatusNotFound))
		if !f.Quiet {
			_, _ = fmt.Fprintf(w, "  Reason:   %v\n", in.Err)
		}
		return nil
	}

	d := in.Delivery
	_, _ = fmt.Fprintf(w, "%s %s -> %d %s\n", req.Method, req.Path, d.Status, http.StatusText(d.Status))
	if f.Quiet {
		return nil
	}

	_, _ = fmt.Fprintf(w, "  File:     %s (%s, modified %s)\n", d.Asset.Name, formatSize(d.Asset.Size), humanize.Time(d.Asset.ModTime))
	if d.Status == http.StatusOK || d.Status == http.StatusPartialContent {
		_, _ = fmt.Fprintf(w, "  Window:   bytes %d-%d (%s)\n", d.Window.Start, d.Window.End, formatSize(d.Window.Length()))
		_, _ = fmt.Fprintf(w, "  Encoding: %s\n", d.Encoding)
	}
	_, _ = fmt.Fprintf(w, "  Body:     %s\n", yesNo(d.Body))

	if len(d.Header) > 0 {
		_, _ = fmt.Fprintln(w, "  Headers:")
		for _, k := range sortedKeys(d.Header) {
			for _, v := range d.Header[k] {
				_, _ = fmt.Fprintf(w, "    %s: %s\n", k, v)
			}
		}
	}

	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatListing formats a directory listing as JSON.
func (f *JSONFormatter) FormatListing(w io.Writer, listing *Listing) error {
	type jsonAsset struct {
		servit.Asset
		Compressible bool `json:"compressible"`
	}

	output := struct {
		Root      string      `json:"root"`
		Files     []jsonAsset `json:"files"`
		TotalSize int64       `json:"total_size"`
	}{
		Root:      listing.Root,
		Files:     make([]jsonAsset, len(listing.Assets)),
		TotalSize: listing.TotalSize(),
	}

	for i := range listing.Assets {
		a := listing.Assets[i]
		output.Files[i] = jsonAsset{
			Asset:        a,
			Compressible: servit.Compressible(a.ContentType) && a.Size >= servit.CompressionThreshold,
		}
	}

	return writeJSON(w, output)
}

// FormatInspection formats a planned delivery as JSON.
func (f *JSONFormatter) FormatInspection(w io.Writer, in *Inspection) error {
	type jsonWindow struct {
		Start int64 `json:"start"`
		End   int64 `json:"end"`
	}

	output := struct {
		Method   string              `json:"method"`
		Path     string              `json:"path"`
		Status   int                 `json:"status"`
		File     *servit.Asset       `json:"file,omitempty"`
		Window   *jsonWindow         `json:"window,omitempty"`
		Encoding string              `json:"encoding,omitempty"`
		Body     bool                `json:"body"`
		Headers  map[string][]string `json:"headers,omitempty"`
		Error    string              `json:"error,omitempty"`
	}{
		Method: in.Request.Method,
		Path:   in.Request.Path,
	}

	if in.Err != nil {
		output.Status = http.StatusNotFound
		output.Error = in.Err.Error()
		return writeJSON(w, output)
	}

	d := in.Delivery
	output.Status = d.Status
	output.File = &d.Asset
	output.Body = d.Body
	output.Headers = d.Header
	if d.Status == http.StatusOK || d.Status == http.StatusPartialContent {
		output.Window = &jsonWindow{Start: d.Window.Start, End: d.Window.End}
		output.Encoding = string(d.Encoding)
	}

	return writeJSON(w, output)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	if bytes < 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(bytes))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func sortedKeys(h http.Header) []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
