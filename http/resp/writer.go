package resp

import "net/http"

// A TrackingWriter wraps an http.ResponseWriter, recording when the response is committed.
// A response commits when its header is written, whether explicitly, by a first Write, or by a Flush.
//
// A TrackingWriter also carries the *Response serving it,
// so every Respond call for one response returns the same *Response.
type TrackingWriter struct {
	http.ResponseWriter
	committed bool
	resp      *Response
	status    int
}

// Track wraps w in a *TrackingWriter.
// If w already is one, it is returned as is.
func Track(w http.ResponseWriter) *TrackingWriter {
	if tw, ok := w.(*TrackingWriter); ok {
		return tw
	}

	return &TrackingWriter{ResponseWriter: w}
}

// Committed reports whether the header has been written.
func (tw *TrackingWriter) Committed() bool { return tw.committed }

// Flush sends any buffered data to the client, committing the response,
// if the wrapped http.ResponseWriter supports it.
func (tw *TrackingWriter) Flush() {
	f, ok := tw.ResponseWriter.(http.Flusher)
	if !ok {
		return
	}

	tw.commit(http.StatusOK)
	f.Flush()
}

// Status returns the status code written, or 0 if the response is not committed.
func (tw *TrackingWriter) Status() int { return tw.status }

// Unwrap returns the wrapped http.ResponseWriter for http.ResponseController.
func (tw *TrackingWriter) Unwrap() http.ResponseWriter { return tw.ResponseWriter }

func (tw *TrackingWriter) Write(b []byte) (int, error) {
	tw.commit(http.StatusOK)
	return tw.ResponseWriter.Write(b)
}

// WriteHeader writes the header with code.
// Only the first call reaches the wrapped http.ResponseWriter.
func (tw *TrackingWriter) WriteHeader(code int) {
	if tw.committed {
		return
	}

	tw.committed = true
	tw.status = code
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *TrackingWriter) commit(code int) {
	if tw.committed {
		return
	}

	tw.committed = true
	tw.status = code
}
