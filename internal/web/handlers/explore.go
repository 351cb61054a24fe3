// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ExploreViewHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ctrl := h.exploreFor(username)

	var notice string
	if len(ctrl.Videos()) == 0 {
		if err := ctrl.Load(); err != nil {
			notice = h.notice(err)
		}
	}

	c.HTML(http.StatusOK, "explore.html", gin.H{
		"title":     "Explore",
		"username":  username,
		"videos":    ctrl.Videos(),
		"active":    ctrl.ActiveIndex(),
		"file_base": h.API.BaseURL() + "/file/",
		"notice":    notice,
	})
}

func (h *Handler) ExploreLikeHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	if err := h.exploreFor(username).ToggleLike(c.PostForm("media")); err != nil {
		c.JSON(http.StatusOK, gin.H{"notice": h.notice(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ExploreScrollHandler is called when the browser's scroll settles. It
// returns the index of the one video allowed to play.
func (h *Handler) ExploreScrollHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	offset, err := strconv.ParseFloat(c.PostForm("offset"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad offset"})
		return
	}
	itemHeight, err := strconv.ParseFloat(c.PostForm("item_height"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad item height"})
		return
	}

	active := h.exploreFor(username).SettleScroll(offset, itemHeight)
	c.JSON(http.StatusOK, gin.H{"active": active})
}
