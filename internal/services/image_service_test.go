package services

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func servePNG(t *testing.T, width, height int) *httptest.Server {
	t.Helper()

	src := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			src.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchAndEncodeResizesAndEncodes(t *testing.T) {
	server := servePNG(t, 800, 600)
	svc := NewImageService(newTestLogger())

	encoded, err := svc.FetchAndEncode(server.URL)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "data:image/jpeg;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(encoded, "data:image/jpeg;base64,"))
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 400, bounds.Dx())
	assert.Equal(t, 300, bounds.Dy())
}

func TestFetchAndEncodeRejectsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	svc := NewImageService(newTestLogger())
	_, err := svc.FetchAndEncode(server.URL)
	assert.Error(t, err)
}

func TestFetchAndEncodeRejectsNonImageBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not an image"))
	}))
	t.Cleanup(server.Close)

	svc := NewImageService(newTestLogger())
	_, err := svc.FetchAndEncode(server.URL)
	assert.Error(t, err)
}
