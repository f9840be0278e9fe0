package http

import (
	"net/http"

	"github.com/sagarc03/servit"
)

// WriteHead copies the planned headers of d and writes its status line.
func WriteHead(w http.ResponseWriter, d servit.Delivery) {
	header := w.Header()
	for k, v := range d.Header {
		header[k] = append([]string(nil), v...)
	}
	w.WriteHeader(d.Status)
}

// WriteNotFound writes a bare 404 with an empty body. It is the only failure
// response, whatever the underlying cause.
func WriteNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}
