// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ProfileViewHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ctrl := h.profileFor(username)

	var notice string
	if err := ctrl.Load(); err != nil {
		notice = h.notice(err)
	}

	h.renderProfile(c, username, notice)
}

func (h *Handler) FollowHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	target := c.PostForm("target")
	if target == "" || target == username {
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	if err := h.profileFor(username).Follow(target); err != nil {
		h.renderProfile(c, username, h.notice(err))
		return
	}

	c.Redirect(http.StatusFound, "/profile")
}

func (h *Handler) renderProfile(c *gin.Context, username, notice string) {
	ctrl := h.profileFor(username)

	posts := ctrl.Posts()
	thumbnails := make([]string, len(posts))
	for i := range posts {
		thumbnails[i] = ctrl.Thumbnail(i)
	}

	postCount, followers, following := ctrl.Counts()

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"title":          "Profile",
		"username":       username,
		"profile_photo":  ctrl.ProfilePhoto(),
		"post_count":     postCount,
		"followers":      followers,
		"following":      following,
		"posts":          posts,
		"thumbnails":     thumbnails,
		"thumbs_loading": ctrl.ThumbnailsLoading(),
		"file_base":      h.API.BaseURL() + "/file/",
		"notice":         notice,
	})
}
