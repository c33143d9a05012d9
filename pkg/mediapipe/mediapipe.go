package mediapipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

const (
	detectPath = "/api/v1/pose/detect"
	healthPath = "/health"

	staticImageMode        = true
	modelComplexity        = 1
	minDetectionConfidence = 0.5
)

// ErrBadResponse marks a reply from the detector that could not be parsed.
// Transport and status failures come back as plain wrapped errors.
var ErrBadResponse = errors.New("malformed pose detector response")

type Landmark struct {
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

type DetectionResult struct {
	Found         bool       `json:"found"`
	Landmarks     []Landmark `json:"landmarks,omitempty"`
	LandmarkCount int        `json:"landmark_count"`
}

type IClient interface {
	DetectPose(ctx context.Context, image []byte, filename string) (*DetectionResult, error)
	HealthCheck(ctx context.Context) error
	BaseURL() string
}

type client struct {
	url        *url.URL
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) (IClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid pose detector url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("pose detector url %q must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("pose detector url %q has no host", baseURL)
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &client{url: u, httpClient: httpClient}, nil
}

func (c *client) BaseURL() string {
	return c.url.String()
}

func (c *client) DetectPose(ctx context.Context, image []byte, filename string) (*DetectionResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}
	if _, err = part.Write(image); err != nil {
		return nil, fmt.Errorf("write image part: %w", err)
	}

	fields := map[string]string{
		"static_image_mode":        strconv.FormatBool(staticImageMode),
		"model_complexity":         strconv.Itoa(modelComplexity),
		"min_detection_confidence": strconv.FormatFloat(minDetectionConfidence, 'f', -1, 64),
	}
	for name, value := range fields {
		if err = writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if err = writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	endpoint := c.url.JoinPath(detectPath).String()
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		resp, _ := io.ReadAll(response.Body)
		return nil, fmt.Errorf("pose detector status code: %d, body: %s", response.StatusCode, resp)
	}

	var result DetectionResult
	if err = json.NewDecoder(response.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return &result, nil
}

func (c *client) HealthCheck(ctx context.Context) error {
	endpoint := c.url.JoinPath(healthPath).String()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("pose detector health status code: %d", response.StatusCode)
	}

	return nil
}
