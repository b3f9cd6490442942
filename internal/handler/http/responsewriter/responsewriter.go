// Package responsewriter wraps http.ResponseWriter so the logging and
// metrics middleware can observe the status code and body size after the
// handler has run.
package responsewriter

import "net/http"

// ResponseWriter records the status code and byte count of a response.
// The zero status is 200, matching net/http's implicit WriteHeader.
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	written int
	wrote   bool
}

// Wrap returns a recording wrapper around w.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code written; later calls are
// ignored, as net/http would warn about them anyway.
func (w *ResponseWriter) WriteHeader(status int) {
	if w.wrote {
		return
	}
	w.wrote = true
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Write counts body bytes, committing an implicit 200 first if needed.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

// StatusCode returns the status code sent to the client.
func (w *ResponseWriter) StatusCode() int { return w.status }

// BytesWritten returns the number of body bytes sent.
func (w *ResponseWriter) BytesWritten() int { return w.written }

// Unwrap exposes the underlying writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
