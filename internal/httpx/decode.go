package httpx

import (
	"compress/gzip"
	"compress/zlib"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

// decodingTransport undoes Content-Encoding. It is needed because the browser
// header profiles set Accept-Encoding explicitly, which turns off net/http's own
// transparent gzip handling.
type decodingTransport struct {
	base http.RoundTripper
}

type decodedBody struct {
	io.Reader
	closer io.Closer
}

func (b decodedBody) Close() error { return b.closer.Close() }

func (t *decodingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil && !errors.Is(err, io.EOF) {
			_ = resp.Body.Close()
			return nil, err
		}
		if gz != nil {
			reader = gz
		} else {
			reader = strings.NewReader("")
		}
	case "deflate":
		zr, err := zlib.NewReader(resp.Body)
		if err != nil && !errors.Is(err, io.EOF) {
			_ = resp.Body.Close()
			return nil, err
		}
		if zr != nil {
			reader = zr
		} else {
			reader = strings.NewReader("")
		}
	default:
		return resp, nil
	}

	resp.Body = decodedBody{Reader: reader, closer: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return resp, nil
}
