// SPDX-License-Identifier: AGPL-3.0-only
package auth

import "github.com/mirrorapp/mirror/internal/api"

type LoginController struct {
	api *api.Client
}

func NewLoginController(client *api.Client) *LoginController {
	return &LoginController{api: client}
}

// Submit validates locally and performs one login call. The caller decides
// what to do with a success (start the session) or an error (notice).
func (l *LoginController) Submit(username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}
	return l.api.Login(username, password)
}
