// SPDX-License-Identifier: AGPL-3.0-only
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ConnectionError marks requests that never completed: the server was
// unreachable, the connection dropped, or the client timed out.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsConnectionError reports whether err means the server was never reached.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// ServerError is a non-success response from a reachable server. Detail
// carries the server's own message when it sent one.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server rejected request (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("server rejected request (%d)", e.StatusCode)
}

// Detail extracts the server-provided detail message from err, if any.
func Detail(err error) string {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Detail
	}
	return ""
}

func newServerError(resp *http.Response) error {
	se := &ServerError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return se
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		se.Detail = payload.Detail
	}

	return se
}
