package resp_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/dispatch/http/resp"
)

func TestTrackingWriter(t *testing.T) {
	tcs := []struct {
		name   string
		act    func(tw *resp.TrackingWriter)
		status int
	}{
		{"untouched", func(tw *resp.TrackingWriter) { tw.Header().Set("X-Test", "1") }, 0},
		{"write-header", func(tw *resp.TrackingWriter) { tw.WriteHeader(http.StatusTeapot) }, http.StatusTeapot},
		{"write", func(tw *resp.TrackingWriter) { tw.Write([]byte("hi")) }, http.StatusOK},
		{"flush", func(tw *resp.TrackingWriter) { tw.Flush() }, http.StatusOK},
		{
			"second-header-ignored",
			func(tw *resp.TrackingWriter) {
				tw.WriteHeader(http.StatusFound)
				tw.WriteHeader(http.StatusInternalServerError)
			},
			http.StatusFound,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			tw := resp.Track(w)

			// Act
			tc.act(tw)

			// Assert
			require.Equal(t, tc.status, tw.Status())
			require.Equal(t, tc.status != 0, tw.Committed())
			if tc.status != 0 {
				require.Equal(t, tc.status, w.Code)
			}
		})
	}
}

func TestTrack(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()

	// Act
	tw := resp.Track(w)

	// Assert
	require.Same(t, tw, resp.Track(tw))
	require.Equal(t, w, tw.Unwrap())
}
