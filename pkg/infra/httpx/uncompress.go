package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fasthttp"
)

var ErrBodyTooLarge = errors.New("decoded body exceeds limit")

type decoder func(body []byte) (io.ReadCloser, error)

var decoders = map[string]decoder{
	"br": func(body []byte) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(bytes.NewReader(body))), nil
	},
	"gzip": func(body []byte) (io.ReadCloser, error) {
		return gzip.NewReader(bytes.NewReader(body))
	},
	"zstd": func(body []byte) (io.ReadCloser, error) {
		dec, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	},
	"deflate": func(body []byte) (io.ReadCloser, error) {
		// RFC 9110 says zlib-wrapped, but raw deflate is common in the wild.
		if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
			return zr, nil
		}
		return flate.NewReader(bytes.NewReader(body)), nil
	},
}

// DecodeBody returns the response body with every Content-Encoding layer
// removed, last applied first. limit caps each decoded layer; zero disables
// the cap.
func DecodeBody(resp *fasthttp.Response, limit int64) ([]byte, error) {
	body := resp.Body()
	ce := string(resp.Header.Peek(fasthttp.HeaderContentEncoding))
	if ce == "" {
		return body, nil
	}

	layers := strings.Split(ce, ",")
	for i := len(layers) - 1; i >= 0; i-- {
		enc := strings.TrimSpace(strings.ToLower(layers[i]))
		switch enc {
		case "", "identity", "compress":
			continue
		}
		dec, ok := decoders[enc]
		if !ok {
			return nil, fmt.Errorf("unsupported content-encoding: %q", layers[i])
		}
		r, err := dec(body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", enc, err)
		}
		body, err = readLimited(r, limit)
		cerr := r.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", enc, err)
		}
		if cerr != nil {
			return nil, fmt.Errorf("%s: %w", enc, cerr)
		}
	}
	return body, nil
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		return nil, ErrBodyTooLarge
	}
	return out, nil
}
