// Package client implements the browser side of the upload and gallery
// protocols as a Go API client: the presigned-URL handshake followed by a
// direct PUT to storage, the proxied multipart upload, and gallery listing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"galeria/internal/domain"
)

// Client talks to the galeria server API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the server at baseURL. A nil httpClient falls
// back to http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// PresignResponse mirrors the POST /api/presigned-url success payload.
type PresignResponse struct {
	Success    bool      `json:"success"`
	UploadURL  string    `json:"uploadUrl"`
	ViewURL    string    `json:"viewUrl"`
	ObjectName string    `json:"objectName"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// UploadResponse mirrors the POST /api/upload success payload.
type UploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	ViewLink string `json:"viewLink"`
}

type imagesResponse struct {
	Success bool                  `json:"success"`
	Images  []domain.GalleryImage `json:"images"`
	Count   int                   `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// PresignUpload asks the server for a write-only upload URL for one file.
func (c *Client) PresignUpload(ctx context.Context, fileName, fileType string, fileSize int64) (*PresignResponse, error) {
	body, err := json.Marshal(map[string]interface{}{
		"fileName": fileName,
		"fileType": fileType,
		"fileSize": fileSize,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/presigned-url", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out PresignResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProxiedUpload sends the file bytes through the server as a multipart form.
func (c *Client) ProxiedUpload(ctx context.Context, fileName, contentType string, data []byte) (*UploadResponse, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	h.Set("Content-Type", contentType)
	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out UploadResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListImages fetches the full gallery listing, newest first.
func (c *Client) ListImages(ctx context.Context) ([]domain.GalleryImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/images", nil)
	if err != nil {
		return nil, err
	}

	var out imagesResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Images, nil
}

// PutDirect writes the file bytes straight to the storage backend using the
// presigned URL, bypassing the server. Content-Type must match the type the
// URL was issued for.
func (c *Client) PutDirect(ctx context.Context, uploadURL, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("direct upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}

// do executes req and decodes the JSON response, turning non-2xx statuses
// into errors carrying the server's error message.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if decErr := json.NewDecoder(resp.Body).Decode(&apiErr); decErr == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
