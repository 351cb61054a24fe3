// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) FeedViewHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ctrl := h.feedFor(username)

	var notice string
	if len(ctrl.Posts()) == 0 && !ctrl.Exhausted() {
		if err := ctrl.LoadInitial(); err != nil {
			notice = h.notice(err)
		}
	}

	c.HTML(http.StatusOK, "feed.html", gin.H{
		"title":     "Feed",
		"username":  username,
		"posts":     ctrl.Posts(),
		"selected":  ctrl.Selected(),
		"draft":     ctrl.DraftComment(),
		"exhausted": ctrl.Exhausted(),
		"file_base": h.API.BaseURL() + "/file/",
		"notice":    notice,
	})
}

// FeedMoreHandler fires when the browser reports the scroll position
// crossed the load-more threshold. The controller's gate makes rapid
// repeats free.
func (h *Handler) FeedMoreHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	ctrl := h.feedFor(username)
	if err := ctrl.TriggerLoadMore(); err != nil {
		c.JSON(http.StatusOK, gin.H{"notice": h.notice(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(ctrl.Posts()),
		"exhausted": ctrl.Exhausted(),
	})
}

func (h *Handler) FeedLikeHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := h.feedFor(username).ToggleLike(c.PostForm("media")); err != nil {
		// The optimistic flip stands; only the notice reflects the failure.
		c.JSON(http.StatusOK, gin.H{"notice": h.notice(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) CommentsOpenHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	h.feedFor(username).OpenComments(c.PostForm("media"))
	c.Redirect(http.StatusFound, "/feed")
}

func (h *Handler) CommentsCloseHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	h.feedFor(username).CloseComments()
	c.Redirect(http.StatusFound, "/feed")
}

func (h *Handler) CommentSubmitHandler(c *gin.Context) {
	username, loggedIn := h.CurrentUser(c)
	if !loggedIn {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ctrl := h.feedFor(username)
	if err := ctrl.SubmitComment(c.PostForm("text")); err != nil {
		ctrl.SetDraftComment(c.PostForm("text"))
		c.HTML(http.StatusOK, "feed.html", gin.H{
			"title":     "Feed",
			"username":  username,
			"posts":     ctrl.Posts(),
			"selected":  ctrl.Selected(),
			"draft":     ctrl.DraftComment(),
			"exhausted": ctrl.Exhausted(),
			"file_base": h.API.BaseURL() + "/file/",
			"notice":    h.notice(err),
		})
		return
	}

	c.Redirect(http.StatusFound, "/feed")
}
