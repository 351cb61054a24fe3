// SPDX-License-Identifier: AGPL-3.0-only
package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Share uploads a new post as a single multipart request. mediaType is
// MediaImage or MediaVideo and fileName is the media's original name, which
// the server only uses for its extension.
func (c *Client) Share(username, text, mediaType, fileName string, media io.Reader) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"username": username,
		"text":     text,
		"type":     mediaType,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("write field %s: %w", name, err)
		}
	}

	part, err := w.CreateFormFile("media", fileName)
	if err != nil {
		return fmt.Errorf("create media part: %w", err)
	}
	if _, err := io.Copy(part, media); err != nil {
		return fmt.Errorf("copy media: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/share", &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return newServerError(resp)
	}

	return nil
}
