package segmentation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"roompainter/internal/region"

	"github.com/sirupsen/logrus"
)

// Client talks to the segmentation backend over HTTP. It implements
// Uploader, Detector, and Advisor.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

// NewClient creates a service client. timeout bounds each request; a service
// failure fails that call only and the session may retry.
func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type uploadResponse struct {
	ImageID     string `json:"image_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	UploadURL   string `json:"upload_url"`
}

// Upload sends raw image bytes and returns the opaque image identifier.
func (c *Client) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/upload", &body)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp uploadResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}

	c.log.WithFields(logrus.Fields{"image_id": resp.ImageID, "size": resp.Size}).Info("image uploaded")
	return resp.ImageID, nil
}

type detectRequest struct {
	ImageID string `json:"image_id"`
}

// wallMask mirrors the service's wall segment shape. Coordinates is either a
// JSON string holding path data or an array of [row, col] integer pairs; the
// service has shipped both at different times.
type wallMask struct {
	MaskID      string          `json:"mask_id"`
	Coordinates json.RawMessage `json:"coordinates"`
	Area        float64         `json:"area"`
	Confidence  float64         `json:"confidence"`
}

type detectResponse struct {
	ImageID    string     `json:"image_id"`
	Walls      []wallMask `json:"walls"`
	PreviewURL string     `json:"preview_url"`
}

// DetectWalls requests wall segmentation for an uploaded image. The raw
// regions preserve the service's mask encoding for region.Normalize to sort
// out.
func (c *Client) DetectWalls(ctx context.Context, imageID string) ([]region.RawRegion, error) {
	req, err := c.jsonRequest(ctx, "/api/v1/detect-walls", detectRequest{ImageID: imageID})
	if err != nil {
		return nil, err
	}

	var resp detectResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	raws := make([]region.RawRegion, 0, len(resp.Walls))
	for _, wall := range resp.Walls {
		mask, rowCol, err := decodeMask(wall.Coordinates)
		if err != nil {
			c.log.WithField("mask_id", wall.MaskID).WithError(err).Warn("skipping undecodable wall mask")
			continue
		}
		raws = append(raws, region.RawRegion{
			ID:         wall.MaskID,
			Mask:       mask,
			RowCol:     rowCol,
			Area:       wall.Area,
			Confidence: wall.Confidence,
		})
	}

	c.log.WithFields(logrus.Fields{"image_id": imageID, "walls": len(raws)}).Info("walls detected")
	return raws, nil
}

type analyzeRequest struct {
	ImageID string `json:"image_id"`
}

type analyzeResponse struct {
	ImageID  string   `json:"image_id"`
	Analysis Analysis `json:"analysis"`
}

// Analyze requests the decoration critique for an uploaded image.
func (c *Client) Analyze(ctx context.Context, imageID string) (*Analysis, error) {
	req, err := c.jsonRequest(ctx, "/api/v1/decoration", analyzeRequest{ImageID: imageID})
	if err != nil {
		return nil, err
	}

	var resp analyzeResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp.Analysis, nil
}

// decodeMask resolves the coordinate payload's dynamic shape: a path data
// string, or a list of [row, col] pairs.
func decodeMask(raw json.RawMessage) (any, bool, error) {
	if len(raw) == 0 {
		return nil, false, fmt.Errorf("empty mask")
	}

	var pathData string
	if err := json.Unmarshal(raw, &pathData); err == nil {
		return pathData, false, nil
	}

	var pairs [][2]float64
	if err := json.Unmarshal(raw, &pairs); err == nil {
		return pairs, true, nil
	}

	return nil, false, fmt.Errorf("mask is neither path data nor a coordinate list")
}

func (c *Client) jsonRequest(ctx context.Context, path string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: status %d: %s", req.URL.Path, resp.StatusCode, bytes.TrimSpace(detail))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", req.URL.Path, err)
	}
	return nil
}
