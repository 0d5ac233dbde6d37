package rws

import (
	"bytes"
	"net/http"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/klauspost/compress/gzip"
)

// NewCachingHTTPClient returns an HTTP client that honours the cache
// headers RWS sets on metadata responses, backed by disk when cacheDir
// is set and by memory otherwise.
func NewCachingHTTPClient(cacheDir string) *http.Client {
	if cacheDir == "" {
		return &http.Client{
			Transport: httpcache.NewTransport(httpcache.NewMemoryCache()),
		}
	}

	cache := diskcache.New(cacheDir)
	return &http.Client{
		Transport: httpcache.NewTransport(cache),
	}
}

// compressBody gzips a request body. RWS accepts Content-Encoding
// gzip on posted ODM documents.
func compressBody(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
