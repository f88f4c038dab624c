package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listFragment = `<table id="dashboard-list"><tr><td>tx-a</td><td>CAPTURED</td></tr></table>`

func serveCompressed(t *testing.T, cfg CompressionConfig, r *http.Request, h http.HandlerFunc) *http.Response {
	t.Helper()
	w := httptest.NewRecorder()
	Compression(cfg)(h).ServeHTTP(w, r)
	return w.Result()
}

func gzipRequest(method string) *http.Request {
	r := httptest.NewRequest(method, "/?tab=transactions", nil)
	r.Header.Set("Accept-Encoding", "gzip, deflate")
	return r
}

func htmlHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	var r io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(resp.Body)
		require.NoError(t, err)
		defer zr.Close()
		r = zr
	}
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestCompression_CompressesListFragments(t *testing.T) {
	resp := serveCompressed(t, CompressionConfig{}, gzipRequest(http.MethodGet), htmlHandler(http.StatusOK, listFragment))

	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", resp.Header.Get("Vary"))
	assert.Empty(t, resp.Header.Get("Content-Length"))
	assert.Equal(t, listFragment, readBody(t, resp))
}

func TestCompression_AcceptEncoding(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{header: "", want: false},
		{header: "br", want: false},
		{header: "gzip", want: true},
		{header: "GZIP;q=0.5", want: true},
		{header: "gzip;q=0", want: false},
		{header: "gzip; q=0.000", want: false},
		{header: "gzip;q=0.01", want: true},
		{header: "deflate, gzip;q=1.0", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, acceptsGzip(tt.header))
		})
	}
}

func TestCompression_Skips(t *testing.T) {
	tests := []struct {
		name   string
		method string
		h      http.HandlerFunc
		body   string
	}{
		{name: "no content", method: http.MethodGet, h: htmlHandler(http.StatusNoContent, "")},
		{name: "not modified", method: http.MethodGet, h: htmlHandler(http.StatusNotModified, "")},
		{name: "head", method: http.MethodHead, h: htmlHandler(http.StatusOK, "")},
		{
			name:   "already encoded",
			method: http.MethodGet,
			h: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.Header().Set("Content-Encoding", "br")
				_, _ = io.WriteString(w, "brotli-bytes")
			},
			body: "brotli-bytes",
		},
		{
			name:   "spreadsheet export",
			method: http.MethodGet,
			h: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
				_, _ = io.WriteString(w, "spreadsheet-bytes")
			},
			body: "spreadsheet-bytes",
		},
		{
			name:   "png",
			method: http.MethodGet,
			h: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "image/png")
				_, _ = io.WriteString(w, "png-bytes")
			},
			body: "png-bytes",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := serveCompressed(t, CompressionConfig{}, gzipRequest(tt.method), tt.h)

			assert.NotEqual(t, "gzip", resp.Header.Get("Content-Encoding"))
			assert.Equal(t, tt.body, readBody(t, resp))
		})
	}
}

func TestCompression_CompressibleTypes(t *testing.T) {
	for _, ct := range []string{"text/html; charset=utf-8", "application/json", "TEXT/CSS", "image/svg+xml"} {
		assert.True(t, compressible(ct), ct)
	}
	assert.False(t, compressible("application/octet-stream"))
}

func TestCompression_ErrorStatusIsCompressed(t *testing.T) {
	body := strings.Repeat("Transaction not found. ", 20)

	resp := serveCompressed(t, CompressionConfig{}, gzipRequest(http.MethodGet), htmlHandler(http.StatusNotFound, body))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
	assert.Equal(t, body, readBody(t, resp))
}

func TestCompression_MinSize(t *testing.T) {
	cfg := CompressionConfig{MinSize: 256}

	t.Run("small body stays plain", func(t *testing.T) {
		resp := serveCompressed(t, cfg, gzipRequest(http.MethodGet), htmlHandler(http.StatusOK, "ok"))
		assert.Empty(t, resp.Header.Get("Content-Encoding"))
		assert.Equal(t, "ok", readBody(t, resp))
	})

	t.Run("body written in chunks crosses the threshold", func(t *testing.T) {
		chunk := strings.Repeat("r", 100)
		resp := serveCompressed(t, cfg, gzipRequest(http.MethodGet), func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			for range 3 {
				_, _ = io.WriteString(w, chunk)
			}
		})
		assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
		assert.Equal(t, strings.Repeat(chunk, 3), readBody(t, resp))
	})
}

func TestCompression_SniffsMissingContentType(t *testing.T) {
	resp := serveCompressed(t, CompressionConfig{}, gzipRequest(http.MethodGet), func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<!DOCTYPE html><html><body>TX Pay</body></html>")
	})

	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestCompression_Flush(t *testing.T) {
	w := httptest.NewRecorder()
	Compression(CompressionConfig{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		_, _ = io.WriteString(w, listFragment)
	})).ServeHTTP(w, gzipRequest(http.MethodGet))

	assert.True(t, w.Flushed)
	assert.Equal(t, listFragment, readBody(t, w.Result()))
}
