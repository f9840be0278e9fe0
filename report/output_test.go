package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sagarc03/servit"
	"github.com/sagarc03/servit/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var modTime = time.Date(2024, 5, 10, 8, 30, 15, 0, time.UTC)

func sampleListing() *report.Listing {
	return &report.Listing{
		Root: "/srv/dist",
		Assets: []servit.Asset{
			{Name: "css/app.css", Size: 2000, ModTime: modTime, ContentType: "text/css; charset=utf-8"},
			{Name: "index.html", Size: 14, ModTime: modTime, ContentType: "text/html; charset=utf-8"},
			{Name: "logo.png", Size: 5000, ModTime: modTime, ContentType: "image/png"},
		},
	}
}

func sampleInspection() *report.Inspection {
	return &report.Inspection{
		Request: servit.RequestView{Method: http.MethodGet, Path: "/css/app.css", AcceptEncoding: "gzip"},
		Delivery: servit.Delivery{
			Status: http.StatusOK,
			Header: http.Header{
				"Content-Type":     {"text/css; charset=utf-8"},
				"Content-Encoding": {"gzip"},
				"Vary":             {"Accept-Encoding"},
			},
			Asset:    servit.Asset{Name: "css/app.css", Size: 2000, ModTime: modTime, ContentType: "text/css; charset=utf-8"},
			Window:   servit.Range{Start: 0, End: 1999},
			Encoding: servit.Gzip,
			Body:     true,
		},
	}
}

func TestNewFormatter(t *testing.T) {
	t.Run("json formatter", func(t *testing.T) {
		formatter := report.NewFormatter(true, false)
		_, ok := formatter.(*report.JSONFormatter)
		assert.True(t, ok)
	})

	t.Run("human formatter quiet", func(t *testing.T) {
		formatter := report.NewFormatter(false, true)
		hf, ok := formatter.(*report.HumanFormatter)
		require.True(t, ok)
		assert.True(t, hf.Quiet)
	})
}

func TestListing_TotalSize(t *testing.T) {
	assert.Equal(t, int64(7014), sampleListing().TotalSize())
	assert.Zero(t, (&report.Listing{}).TotalSize())
}

func TestHumanFormatter_FormatListing(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		err := (&report.HumanFormatter{}).FormatListing(&buf, sampleListing())
		require.NoError(t, err)

		output := buf.String()
		assert.Contains(t, output, "NAME")
		assert.Contains(t, output, "css/app.css")
		assert.Contains(t, output, "2.0 kB")
		assert.Contains(t, output, "14 B")
		assert.Contains(t, output, "2024-05-10 08:30:15")
		assert.Contains(t, output, "3 file(s) (7.0 kB total)")
	})

	t.Run("compressibility column", func(t *testing.T) {
		var buf bytes.Buffer
		err := (&report.HumanFormatter{}).FormatListing(&buf, sampleListing())
		require.NoError(t, err)

		lines := bytes.Split(buf.Bytes(), []byte("\n"))
		require.GreaterOrEqual(t, len(lines), 5)
		assert.Contains(t, string(lines[2]), "yes") // css above threshold
		assert.Contains(t, string(lines[3]), "no")  // html below threshold
		assert.Contains(t, string(lines[4]), "no")  // png never
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		err := (&report.HumanFormatter{}).FormatListing(&buf, &report.Listing{Root: "/srv/dist"})
		require.NoError(t, err)
		assert.Equal(t, "No files found in /srv/dist\n", buf.String())
	})

	t.Run("quiet", func(t *testing.T) {
		var buf bytes.Buffer
		err := (&report.HumanFormatter{Quiet: true}).FormatListing(&buf, sampleListing())
		require.NoError(t, err)
		assert.Equal(t, "css/app.css\nindex.html\nlogo.png\n", buf.String())
	})
}

func TestHumanFormatter_FormatInspection(t *testing.T) {
	t.Run("delivery", func(t *testing.T) {
		var buf bytes.Buffer
		err := (&report.HumanFormatter{}).FormatInspection(&buf, sampleInspection())
		require.NoError(t, err)

		output := buf.String()
		assert.Contains(t, output, "GET /css/app.css -> 200 OK")
		assert.Contains(t, output, "File:     css/app.css (2.0 kB")
		assert.Contains(t, output, "Window:   bytes 0-1999")
		assert.Contains(t, output, "Encoding: gzip")
		assert.Contains(t, output, "Body:     yes")
		assert.Contains(t, output, "    Content-Encoding: gzip\n    Content-Type: text/css; charset=utf-8\n    Vary: Accept-Encoding\n")
	})

	t.Run("not modified", func(t *testing.T) {
		in := sampleInspection()
		in.Delivery.Status = http.StatusNotModified
		in.Delivery.Header = http.Header{}
		in.Delivery.Body = false

		var buf bytes.Buffer
		err := (&report.HumanFormatter{}).FormatInspection(&buf, in)
		require.NoError(t, err)

		output := buf.String()
		assert.Contains(t, output, "-> 304 Not Modified")
		assert.NotContains(t, output, "Window:")
		assert.NotContains(t, output, "Headers:")
	})

	t.Run("not found", func(t *testing.T) {
		in := &report.Inspection{
			Request: servit.RequestView{Method: http.MethodGet, Path: "/../secret"},
			Err:     servit.ErrPathEscape,
		}

		var buf bytes.Buffer
		err := (&report.HumanFormatter{}).FormatInspection(&buf, in)
		require.NoError(t, err)

		assert.Equal(t, "GET /../secret -> 404 Not Found\n  Reason:   path escapes root\n", buf.String())
	})

	t.Run("quiet", func(t *testing.T) {
		var buf bytes.Buffer
		err := (&report.HumanFormatter{Quiet: true}).FormatInspection(&buf, sampleInspection())
		require.NoError(t, err)
		assert.Equal(t, "GET /css/app.css -> 200 OK\n", buf.String())
	})
}

func TestJSONFormatter_FormatListing(t *testing.T) {
	var buf bytes.Buffer
	err := (&report.JSONFormatter{}).FormatListing(&buf, sampleListing())
	require.NoError(t, err)

	var result struct {
		Root  string `json:"root"`
		Files []struct {
			Name         string `json:"name"`
			Size         int64  `json:"size"`
			ContentType  string `json:"content_type"`
			Compressible bool   `json:"compressible"`
		} `json:"files"`
		TotalSize int64 `json:"total_size"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	assert.Equal(t, "/srv/dist", result.Root)
	assert.Equal(t, int64(7014), result.TotalSize)
	require.Len(t, result.Files, 3)
	assert.Equal(t, "css/app.css", result.Files[0].Name)
	assert.True(t, result.Files[0].Compressible)
	assert.False(t, result.Files[1].Compressible)
	assert.False(t, result.Files[2].Compressible)
}

func TestJSONFormatter_FormatInspection(t *testing.T) {
	t.Run("delivery", func(t *testing.T) {
		var buf bytes.Buffer
		err := (&report.JSONFormatter{}).FormatInspection(&buf, sampleInspection())
		require.NoError(t, err)

		var result map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

		assert.Equal(t, float64(200), result["status"])
		assert.Equal(t, "gzip", result["encoding"])
		assert.Equal(t, true, result["body"])
		assert.Equal(t, map[string]any{"start": float64(0), "end": float64(1999)}, result["window"])
		assert.NotContains(t, result, "error")
	})

	t.Run("not found", func(t *testing.T) {
		in := &report.Inspection{
			Request: servit.RequestView{Method: http.MethodHead, Path: "/missing"},
			Err:     servit.ErrNotFound,
		}

		var buf bytes.Buffer
		err := (&report.JSONFormatter{}).FormatInspection(&buf, in)
		require.NoError(t, err)

		var result map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

		assert.Equal(t, float64(404), result["status"])
		assert.Equal(t, "not found", result["error"])
		assert.NotContains(t, result, "file")
	})
}

func TestFormatError(t *testing.T) {
	var human bytes.Buffer
	require.NoError(t, (&report.HumanFormatter{}).FormatError(&human, errors.New("boom")))
	assert.Equal(t, "Error: boom\n", human.String())

	var js bytes.Buffer
	require.NoError(t, (&report.JSONFormatter{}).FormatError(&js, errors.New("boom")))
	assert.JSONEq(t, `{"error":"boom"}`, js.String())
}
