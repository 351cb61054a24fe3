// SPDX-License-Identifier: AGPL-3.0-only
// Package handlers is the web face of the client: one gin handler set per
// screen, each delegating to that screen's controller. Controllers are
// created per authenticated username and own their screen's state in
// isolation; the username itself is the only value carried across screens,
// read from the cookie session and passed by value into constructors.
package handlers

import (
	"errors"
	"sync"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/mirrorapp/mirror/internal/api"
	"github.com/mirrorapp/mirror/internal/auth"
	"github.com/mirrorapp/mirror/internal/config"
	"github.com/mirrorapp/mirror/internal/explore"
	"github.com/mirrorapp/mirror/internal/feed"
	"github.com/mirrorapp/mirror/internal/helpers"
	"github.com/mirrorapp/mirror/internal/middleware"
	"github.com/mirrorapp/mirror/internal/profile"
	"github.com/mirrorapp/mirror/internal/share"
	"github.com/mirrorapp/mirror/internal/thumbs"
)

const (
	noticeConnection = "There was a problem connecting to the server. Please try again later."
	noticeGeneric    = "Something went wrong. Please try again."
)

type Handler struct {
	API    *api.Client
	Config *config.AppConfig
	Thumbs *thumbs.Generator

	Login  *auth.LoginController
	Signup *auth.SignupController
	Forgot *auth.ForgotController

	mu       sync.Mutex
	feeds    map[string]*feed.Controller
	explores map[string]*explore.Controller
	shares   map[string]*share.Controller
	profiles map[string]*profile.Controller
}

func NewHandler(client *api.Client, cfg *config.AppConfig, thumbs *thumbs.Generator) *Handler {
	return &Handler{
		API:      client,
		Config:   cfg,
		Thumbs:   thumbs,
		Login:    auth.NewLoginController(client),
		Signup:   auth.NewSignupController(client),
		Forgot:   auth.NewForgotController(client),
		feeds:    make(map[string]*feed.Controller),
		explores: make(map[string]*explore.Controller),
		shares:   make(map[string]*share.Controller),
		profiles: make(map[string]*profile.Controller),
	}
}

// CurrentUser reads the authenticated username from the session.
func (h *Handler) CurrentUser(c *gin.Context) (string, bool) {
	session := sessions.Default(c)
	username, ok := session.Get(middleware.SessionUserKey).(string)
	return username, ok && username != ""
}

func (h *Handler) feedFor(username string) *feed.Controller {
	h.mu.Lock()
	defer h.mu.Unlock()
	ctrl, ok := h.feeds[username]
	if !ok {
		ctrl = feed.NewController(h.API, username)
		h.feeds[username] = ctrl
	}
	return ctrl
}

func (h *Handler) exploreFor(username string) *explore.Controller {
	h.mu.Lock()
	defer h.mu.Unlock()
	ctrl, ok := h.explores[username]
	if !ok {
		ctrl = explore.NewController(h.API, username)
		h.explores[username] = ctrl
	}
	return ctrl
}

func (h *Handler) shareFor(username string) *share.Controller {
	h.mu.Lock()
	defer h.mu.Unlock()
	ctrl, ok := h.shares[username]
	if !ok {
		ctrl = share.NewController(h.API, username, h.Thumbs)
		h.shares[username] = ctrl
	}
	return ctrl
}

func (h *Handler) profileFor(username string) *profile.Controller {
	h.mu.Lock()
	defer h.mu.Unlock()
	ctrl, ok := h.profiles[username]
	if !ok {
		ctrl = profile.NewController(h.API, username, h.Thumbs)
		h.profiles[username] = ctrl
	}
	return ctrl
}

// dropControllers forgets a user's screen state, as logging out does.
func (h *Handler) dropControllers(username string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.feeds, username)
	delete(h.explores, username)
	delete(h.shares, username)
	delete(h.profiles, username)
}

// notice maps an error onto the user-visible message for it: connection
// problems and server rejections get their class's message, with a
// server-provided detail shown (as text) when present; anything else is a
// local validation message shown as-is.
func (h *Handler) notice(err error) string {
	if err == nil {
		return ""
	}

	if api.IsConnectionError(err) {
		return noticeConnection
	}

	var se *api.ServerError
	if errors.As(err, &se) {
		if se.Detail != "" {
			return helpers.StripHTML(se.Detail)
		}
		return noticeGeneric
	}

	return err.Error()
}
