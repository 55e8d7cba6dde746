package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

const (
	imageWidth  = 400
	imageHeight = 300
	jpegQuality = 80
)

// ImageService fetches a remote image, resizes it and returns it as a
// base64 data URI suitable for embedding in a restaurant document.
type ImageService struct {
	client *http.Client
	log    *logrus.Logger
}

func NewImageService(log *logrus.Logger) *ImageService {
	return &ImageService{
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

func (s *ImageService) FetchAndEncode(url string) (string, error) {
	resp, err := s.client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d fetching image", resp.StatusCode)
	}

	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return "", err
	}

	resized := imaging.Resize(img, imageWidth, imageHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", err
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
