package httpx

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
)

// CompressionConfig configures Compression. Level 0 means gzip's default;
// MinSize 0 compresses every eligible body.
type CompressionConfig struct {
	Level   int
	MinSize int
	Logger  *slog.Logger

	pool *sync.Pool
}

//nolint:gochecknoglobals // read-only
var compressibleTypes = map[string]bool{
	"text/html":              true,
	"text/css":               true,
	"text/plain":             true,
	"text/javascript":        true,
	"application/javascript": true,
	"application/json":       true,
	"image/svg+xml":          true,
}

// compressible reports whether a Content-Type is worth gzipping. Exports
// (xlsx, csv downloads) and images are not.
func compressible(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return compressibleTypes[strings.ToLower(strings.TrimSpace(mediaType))]
}

// Compression gzips responses for clients that accept it. The choice is made
// once the status and Content-Type are known: 1xx, 204 and 304 responses,
// HEAD requests, already encoded bodies and non-text types pass through.
func Compression(cfg CompressionConfig) func(http.Handler) http.Handler {
	if cfg.Level == 0 {
		cfg.Level = gzip.DefaultCompression
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	level := cfg.Level
	cfg.pool = &sync.Pool{New: func() any {
		zw, err := gzip.NewWriterLevel(io.Discard, level)
		if err != nil {
			return gzip.NewWriter(io.Discard)
		}
		return zw
	}}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Accept-Encoding")

			gzw := &gzipResponseWriter{ResponseWriter: w, request: r, config: &cfg, status: http.StatusOK}
			next.ServeHTTP(gzw, r)
			if err := gzw.finish(); err != nil {
				cfg.Logger.ErrorContext(r.Context(), "finishing compressed response failed", "error", err)
			}
		})
	}
}

// acceptsGzip checks if the client accepts gzip encoding, respecting q=0.
func acceptsGzip(acceptEncoding string) bool {
	for _, part := range strings.Split(acceptEncoding, ",") {
		part = strings.TrimSpace(part)
		encoding, params, _ := strings.Cut(part, ";")
		if !strings.EqualFold(strings.TrimSpace(encoding), "gzip") {
			continue
		}
		params = strings.ReplaceAll(strings.TrimSpace(params), " ", "")
		if params == "q=0" || strings.HasPrefix(params, "q=0.0") && strings.Trim(params[len("q=0."):], "0") == "" {
			return false
		}
		return true
	}
	return false
}

// gzipResponseWriter defers the compression decision until the status and
// content type are known, and, with MinSize, until enough body has been seen.
type gzipResponseWriter struct {
	http.ResponseWriter
	request *http.Request
	config  *CompressionConfig

	status        int
	headerPending bool // WriteHeader was called but not yet forwarded
	headerWritten bool // forwarded to the underlying writer
	decided       bool
	compress      bool
	gzipWriter    *gzip.Writer
	buffered      []byte
}

// WriteHeader records the status. Forwarding waits until the body decides
// whether Content-Encoding is set.
func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.headerWritten || w.headerPending {
		return
	}
	w.status = statusCode
	w.headerPending = true

	if !w.eligible() {
		w.decide(false)
	}
}

func (w *gzipResponseWriter) eligible() bool {
	if w.status < 200 || w.status == http.StatusNoContent || w.status == http.StatusNotModified {
		return false
	}
	if w.Header().Get("Content-Encoding") != "" {
		return false
	}
	ct := w.Header().Get("Content-Type")
	return ct == "" || compressible(ct)
}

// decide forwards the header with or without gzip.
func (w *gzipResponseWriter) decide(compress bool) {
	if w.decided {
		return
	}
	w.decided = true
	w.compress = compress
	if compress {
		w.gzipWriter, _ = w.config.pool.Get().(*gzip.Writer)
		w.gzipWriter.Reset(w.ResponseWriter)
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
	}
	w.headerWritten = true
	w.ResponseWriter.WriteHeader(w.status)
}

// Write compresses data if compression is enabled.
func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.headerPending && !w.headerWritten {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(b))
		}
		w.WriteHeader(http.StatusOK)
	}

	if !w.decided {
		if !w.eligible() {
			w.decide(false)
		} else if w.config.MinSize > 0 && len(w.buffered)+len(b) < w.config.MinSize {
			w.buffered = append(w.buffered, b...)
			return len(b), nil
		} else {
			w.decide(true)
			if err := w.flushBuffered(); err != nil {
				return 0, err
			}
		}
	}

	if w.compress {
		return w.gzipWriter.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *gzipResponseWriter) flushBuffered() error {
	if len(w.buffered) == 0 {
		return nil
	}
	var err error
	if w.compress {
		_, err = w.gzipWriter.Write(w.buffered)
	} else {
		_, err = w.ResponseWriter.Write(w.buffered)
	}
	w.buffered = nil
	return err
}

// finish writes a small buffered body uncompressed and closes the gzip stream.
func (w *gzipResponseWriter) finish() error {
	if !w.decided && (w.headerPending || len(w.buffered) > 0) {
		w.decide(false)
	}
	err := w.flushBuffered()
	if w.gzipWriter != nil {
		if cerr := w.gzipWriter.Close(); cerr != nil && err == nil {
			err = cerr
		}
		w.gzipWriter.Reset(io.Discard)
		w.config.pool.Put(w.gzipWriter)
		w.gzipWriter = nil
	}
	return err
}

// Flush implements http.Flusher for streaming support. A pending decision is
// made in favor of compression since the body is already streaming.
func (w *gzipResponseWriter) Flush() {
	if !w.decided && w.headerPending {
		w.decide(w.eligible())
		if err := w.flushBuffered(); err != nil {
			w.config.Logger.ErrorContext(w.request.Context(), "flushing buffered body failed", "error", err)
		}
	}
	if w.gzipWriter != nil {
		if err := w.gzipWriter.Flush(); err != nil {
			w.config.Logger.ErrorContext(w.request.Context(), "flushing gzip writer failed", "error", err)
		}
	}
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack implements http.Hijacker.
func (w *gzipResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, errors.New("http.Hijacker not supported")
}
