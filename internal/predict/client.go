// Package predict talks to the image classification server.
package predict

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/scenic/internal/common"
	"github.com/Veraticus/scenic/internal/model"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Endpoint is the path classification requests are posted to.
const Endpoint = "/predict"

// FieldName is the multipart field carrying the image.
const FieldName = "file"

// RequestIDHeader carries a per-request id for log correlation.
const RequestIDHeader = "X-Request-ID"

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 1 << 20

// Config holds client settings.
type Config struct {
	// HTTPClient overrides the default client when set.
	HTTPClient *http.Client
	BaseURL    string
	// Timeout of zero means requests wait until the context is done.
	Timeout time.Duration
}

// Client posts images to the classification server.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient validates cfg and builds a client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: server URL is required", common.ErrMissingConfig)
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: server URL: %w", common.ErrInvalidConfig, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: server URL must be http or https, got %q", common.ErrInvalidConfig, cfg.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("%w: server URL has no host: %q", common.ErrInvalidConfig, cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   strings.TrimSuffix(base.String(), "/") + Endpoint,
	}, nil
}

// Endpoint returns the full URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Predict uploads file and decodes the server's answer. The body is decoded
// whatever the HTTP status, so an error JSON on a 4xx/5xx comes back as a
// result with Success false. Failures to send or parse return a
// *common.TransportError.
func (c *Client) Predict(ctx context.Context, file model.File) (model.PredictionResult, error) {
	body, contentType, err := encodeUpload(file)
	if err != nil {
		return model.PredictionResult{}, &common.TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return model.PredictionResult{}, &common.TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	slog.Debug("Sending prediction request",
		"request_id", requestID,
		"url", c.endpoint,
		"file", file.Name(),
		"type", file.Type(),
		"size", file.Size())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.PredictionResult{}, &common.TransportError{Err: unwrapURLError(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return model.PredictionResult{}, &common.TransportError{
			Err:        fmt.Errorf("failed to read response: %w", err),
			StatusCode: resp.StatusCode,
		}
	}

	slog.Debug("Received prediction response",
		"request_id", requestID,
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(start))

	result, err := decodeResult(data)
	if err != nil {
		return model.PredictionResult{}, &common.TransportError{Err: err, StatusCode: resp.StatusCode}
	}

	return result, nil
}

// encodeUpload builds the multipart body. The part carries the declared type
// the way a browser FormData upload does.
func encodeUpload(file model.File) (io.Reader, string, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", file.Name(), err)
	}
	defer func() { _ = rc.Close() }()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		FieldName, escapeQuotes(file.Name())))
	partType := file.Type()
	if partType == "" {
		partType = "application/octet-stream"
	}
	header.Set("Content-Type", partType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, rc); err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", file.Name(), err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}

	return &buf, mw.FormDataContentType(), nil
}

func decodeResult(data []byte) (model.PredictionResult, error) {
	var result model.PredictionResult
	if err := sonic.Unmarshal(data, &result); err != nil {
		return model.PredictionResult{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Success && result.PredictedClass == "" {
		return model.PredictionResult{}, errors.New("malformed response: success without predicted_class")
	}

	return result, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// unwrapURLError strips the "Post <url>:" prefix net/http adds so alerts
// read like the underlying failure.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
