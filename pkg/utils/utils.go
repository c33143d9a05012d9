package utils

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	IsAllowedImageType(contentType string) bool
	ReadMultipartFile(file *multipart.FileHeader) ([]byte, error)
	DecodeImageBounds(data []byte) (int, int, error)
	DecodeBase64Image(encoded string) ([]byte, error)
}

type utils struct {
	allowedImageTypes map[string]struct{}
}

func New() IUtils {
	return &utils{
		allowedImageTypes: map[string]struct{}{
			"image/jpeg": {},
			"image/jpg":  {},
			"image/png":  {},
			"image/jpe":  {},
		},
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) IsAllowedImageType(contentType string) bool {
	mediaType := contentType
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	_, ok := u.allowedImageTypes[mediaType]
	return ok
}

func (u *utils) ReadMultipartFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}

// DecodeImageBounds reads just enough of the image header to report its
// pixel dimensions without decoding the full frame.
func (u *utils) DecodeImageBounds(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}

	return cfg.Width, cfg.Height, nil
}

func (u *utils) DecodeBase64Image(encoded string) ([]byte, error) {
	// browser capture frames arrive as data URLs
	if idx := strings.Index(encoded, ";base64,"); idx >= 0 {
		encoded = encoded[idx+len(";base64,"):]
	}

	return base64.StdEncoding.DecodeString(encoded)
}
