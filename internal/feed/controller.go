// SPDX-License-Identifier: AGPL-3.0-only
package feed

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mirrorapp/mirror/internal/api"
)

// Controller owns the infinite-scroll image feed for one user: the
// append-only post list, the pagination cursor, and the comment modal.
// Optimistic mutations (like flips, comment appends) are applied locally
// before the server call and are never rolled back when it fails; callers
// get the error back for the notice only.
type Controller struct {
	api      *api.Client
	username string

	mu        sync.Mutex
	posts     []api.Post
	cursor    int
	loading   bool
	exhausted bool
	selected  *api.Post
	draft     string
}

func NewController(client *api.Client, username string) *Controller {
	return &Controller{
		api:      client,
		username: username,
	}
}

// LoadInitial fetches page 0. The cursor stays at 0 until the first
// TriggerLoadMore. A call while another load is in flight is a no-op.
func (c *Controller) LoadInitial() error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	page := c.cursor
	c.mu.Unlock()

	return c.fetchAndAppend(page)
}

// TriggerLoadMore advances the cursor by one page step and fetches that
// page. It is a no-op while a load is in flight or after the feed is
// exhausted, so rapid repeated firing issues at most one request.
func (c *Controller) TriggerLoadMore() error {
	c.mu.Lock()
	if c.loading || c.exhausted {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.cursor += api.FeedPageSize
	page := c.cursor
	c.mu.Unlock()

	return c.fetchAndAppend(page)
}

// fetchAndAppend requires the loading gate to be held by the caller and
// releases it. On failure the cursor is not rolled back: a failed page is
// skipped, not retried.
func (c *Controller) fetchAndAppend(page int) error {
	posts, err := c.api.FeedPage(page)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		return err
	}

	c.posts = append(c.posts, posts...)
	if len(posts) < api.FeedPageSize {
		c.exhausted = true
	}

	return nil
}

// ToggleLike flips the active user's membership in the post's like set
// locally, then informs the server. The local flip stands even when the
// server call fails.
func (c *Controller) ToggleLike(mediaPath string) error {
	c.mu.Lock()
	idx := c.indexOf(mediaPath)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("no post with media %q", mediaPath)
	}
	c.posts[idx].Likes = toggleMember(c.posts[idx].Likes, c.username)
	if c.selected != nil && c.selected.MediaPath == mediaPath {
		c.selected.Likes = toggleMember(c.selected.Likes, c.username)
	}
	c.mu.Unlock()

	return c.api.Like(c.username, mediaPath)
}

// OpenComments captures a copy of the post for the comment modal. It
// reports false when no post with that media path is loaded.
func (c *Controller) OpenComments(mediaPath string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(mediaPath)
	if idx < 0 {
		return false
	}

	selected := c.posts[idx]
	selected.Likes = append([]string(nil), c.posts[idx].Likes...)
	selected.Comments = append([]api.Comment(nil), c.posts[idx].Comments...)
	c.selected = &selected

	return true
}

// CloseComments dismisses the modal and discards the draft comment. No
// modal state survives between sessions.
func (c *Controller) CloseComments() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
	c.draft = ""
}

// SubmitComment appends (username, text) to both the modal's copy and the
// matching backing post, then persists to the server. Whitespace-only text
// or a closed modal is a no-op with no network call.
func (c *Controller) SubmitComment(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	c.mu.Lock()
	if c.selected == nil {
		c.mu.Unlock()
		return nil
	}

	comment := api.Comment{Username: c.username, Text: text}
	mediaPath := c.selected.MediaPath
	c.selected.Comments = append(c.selected.Comments, comment)
	if idx := c.indexOf(mediaPath); idx >= 0 {
		c.posts[idx].Comments = append(c.posts[idx].Comments, comment)
	}
	c.draft = ""
	c.mu.Unlock()

	return c.api.AddComment(mediaPath, comment)
}

func (c *Controller) SetDraftComment(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

func (c *Controller) DraftComment() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Posts returns a snapshot of the loaded feed in append order.
func (c *Controller) Posts() []api.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]api.Post(nil), c.posts...)
}

// Selected returns a copy of the post shown in the comment modal, or nil
// when the modal is closed.
func (c *Controller) Selected() *api.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return nil
	}
	selected := *c.selected
	return &selected
}

func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Exhausted reports whether a short page marked the end of the feed.
func (c *Controller) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exhausted
}

// indexOf requires c.mu to be held.
func (c *Controller) indexOf(mediaPath string) int {
	for i := range c.posts {
		if c.posts[i].MediaPath == mediaPath {
			return i
		}
	}
	return -1
}

func toggleMember(likes []string, username string) []string {
	for i, u := range likes {
		if u == username {
			return append(likes[:i], likes[i+1:]...)
		}
	}
	return append(likes, username)
}
