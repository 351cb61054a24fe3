// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) ShareViewHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	draft := h.shareFor(username).Draft()
	c.HTML(http.StatusOK, "share.html", gin.H{
		"title":    "Share",
		"username": username,
		"draft":    draft,
	})
}

// ShareMediaHandler receives the browser's file for one of the three
// acquisition actions (pick, photo, video) and hands the stored copy to the
// compose controller, which overwrites any prior selection.
func (h *Handler) ShareMediaHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ctrl := h.shareFor(username)

	file, err := c.FormFile("media")
	if err != nil {
		h.renderShare(c, username, "Select a file first.")
		return
	}

	dir := filepath.Join(os.TempDir(), "mirror-uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		h.renderShare(c, username, h.notice(err))
		return
	}
	dst := filepath.Join(dir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		h.renderShare(c, username, h.notice(err))
		return
	}

	switch c.PostForm("action") {
	case "photo":
		err = ctrl.CapturePhoto(dst)
	case "video":
		err = ctrl.CaptureVideo(dst)
	default:
		err = ctrl.PickMedia(dst)
	}
	if err != nil {
		h.renderShare(c, username, h.notice(err))
		return
	}

	c.Redirect(http.StatusFound, "/share")
}

func (h *Handler) ShareSubmitHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ctrl := h.shareFor(username)
	ctrl.SetText(c.PostForm("text"))

	if err := ctrl.Submit(); err != nil {
		// The draft survives the failure so a retry needs no re-selection.
		h.renderShare(c, username, h.notice(err))
		return
	}

	h.renderShare(c, username, "Your post was shared.")
}

func (h *Handler) ShareDiscardHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	h.shareFor(username).Discard()
	c.Redirect(http.StatusFound, "/share")
}

func (h *Handler) renderShare(c *gin.Context, username, notice string) {
	c.HTML(http.StatusOK, "share.html", gin.H{
		"title":    "Share",
		"username": username,
		"draft":    h.shareFor(username).Draft(),
		"notice":   notice,
	})
}
