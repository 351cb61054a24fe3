// SPDX-License-Identifier: AGPL-3.0-only
package api

import "context"

func (c *Client) Login(username, password string) error {
	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	return c.postJSON("/login", payload, nil)
}

func (c *Client) Signup(username, email, password string) error {
	payload := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{username, email, password}

	return c.postJSON("/signup", payload, nil)
}

// CheckUsername reports whether username is still free. The context lets a
// debounced caller cancel a check that a newer keystroke made stale.
func (c *Client) CheckUsername(ctx context.Context, username string) (bool, error) {
	payload := struct {
		Username string `json:"username"`
	}{username}

	var result struct {
		Available bool `json:"available"`
	}
	if err := c.postJSONContext(ctx, "/check-username", payload, &result); err != nil {
		return false, err
	}

	return result.Available, nil
}

func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	payload := struct {
		Email string `json:"email"`
	}{email}

	var result struct {
		Available bool `json:"available"`
	}
	if err := c.postJSONContext(ctx, "/check-email", payload, &result); err != nil {
		return false, err
	}

	return result.Available, nil
}

func (c *Client) SendResetCode(email string) error {
	payload := struct {
		Email string `json:"email"`
	}{email}

	return c.postJSON("/send-reset-code", payload, nil)
}

func (c *Client) ResetPassword(email, code, newPassword string) error {
	payload := struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}{email, code, newPassword}

	return c.postJSON("/reset-password", payload, nil)
}
