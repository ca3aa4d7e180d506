package api

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
	"strings"
	"time"
)

// Upload is one local file queued for conversion.
type Upload struct {
	Name    string
	Content io.Reader
}

// UploadFiles posts the files plus format metadata as a multipart form. The
// multipart writer supplies the content type; the JSON header is deliberately
// absent so the boundary survives.
func (c *Client) UploadFiles(ctx context.Context, files []Upload, fromFormat, toFormat, userEmail string) (*UploadResponse, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to upload")
	}
	fromFormat = strings.TrimSpace(fromFormat)
	toFormat = strings.TrimSpace(toFormat)
	if fromFormat == "" || toFormat == "" {
		return nil, errors.New("source and target formats required")
	}

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	for _, file := range files {
		part, err := writer.CreateFormFile("files", file.Name)
		if err != nil {
			return nil, fmt.Errorf("create form file %q: %w", file.Name, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, fmt.Errorf("copy file %q: %w", file.Name, err)
		}
	}
	if err := writer.WriteField("fromFormat", fromFormat); err != nil {
		return nil, fmt.Errorf("write form field: %w", err)
	}
	if err := writer.WriteField("toFormat", toFormat); err != nil {
		return nil, fmt.Errorf("write form field: %w", err)
	}
	if userEmail != "" {
		if err := writer.WriteField("userEmail", userEmail); err != nil {
			return nil, fmt.Errorf("write form field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize form: %w", err)
	}

	target, err := c.endpointURL("/files/upload", nil)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, &form)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	var payload UploadResponse
	if err := decodeJSON(resp.Body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// StartConversion requests conversion for the full batch of identifiers.
func (c *Client) StartConversion(ctx context.Context, fileIDs []string) (*StartConversionResponse, error) {
	if len(fileIDs) == 0 {
		return nil, errors.New("no file ids provided")
	}
	body := map[string][]string{"fileIds": fileIDs}
	var payload StartConversionResponse
	if err := c.request(ctx, http.MethodPost, "/convert/start", nil, body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ConversionProgress fetches the current progress for one file.
func (c *Client) ConversionProgress(ctx context.Context, fileID string) (*ProgressResponse, error) {
	if fileID == "" {
		return nil, errors.New("file id required")
	}
	var payload ProgressResponse
	if err := c.request(ctx, http.MethodGet, "/convert/progress/"+url.PathEscape(fileID), nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DownloadFile streams the converted file. A timestamp query parameter and a
// no-cache header bypass intermediary caching. The caller owns the returned
// reader and must close it.
func (c *Client) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if fileID == "" {
		return nil, errors.New("file id required")
	}

	query := url.Values{}
	query.Set("t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	target, err := c.endpointURL("/files/"+url.PathEscape(fileID)+"/download", query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute download: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp.Body, nil
}

// Files lists uploaded files with optional status filtering.
func (c *Client) Files(ctx context.Context, page, perPage int, status string) (*FileListResponse, error) {
	query := pageQuery(page, perPage)
	if status != "" {
		query.Set("status", status)
	}
	var payload FileListResponse
	if err := c.request(ctx, http.MethodGet, "/files", query, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteFile removes an uploaded file and its conversion output.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if fileID == "" {
		return errors.New("file id required")
	}
	return c.request(ctx, http.MethodDelete, "/files/"+url.PathEscape(fileID), nil, nil, nil)
}

// FileStats fetches aggregate conversion counters.
func (c *Client) FileStats(ctx context.Context) (*FileStats, error) {
	var payload FileStats
	if err := c.request(ctx, http.MethodGet, "/files/stats", nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func decodeJSON(r io.Reader, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
