// Package storage talks to the external media store. The core keeps
// only the returned URLs; upload and delete are delegated entirely.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"gymdesk/internal/logger"

	"github.com/google/uuid"
)

type Service interface {
	Upload(ctx context.Context, folder, filename string, data []byte) (string, error)
	DeleteByURL(ctx context.Context, fileURL string) error
}

type client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) Service {
	return &client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores the object under a uuid-based key so concurrent uploads
// of the same filename never collide.
func (c *client) Upload(ctx context.Context, folder, filename string, data []byte) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), path.Ext(filename))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/objects/"+key, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("media store upload: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("media store upload: unexpected status %d", resp.StatusCode)
	}

	fileURL := c.baseURL + "/objects/" + key
	logger.Debug("media object stored", "url", fileURL)
	return fileURL, nil
}

func (c *client) DeleteByURL(ctx context.Context, fileURL string) error {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("media store delete: bad url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+parsed.Path, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("media store delete: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("media store delete: unexpected status %d", resp.StatusCode)
	}

	return nil
}
