// SPDX-License-Identifier: AGPL-3.0-only
package explore

import (
	"fmt"
	"math"
	"sync"

	"github.com/mirrorapp/mirror/internal/api"
)

// Controller owns the vertically paged video feed: the fetched list and the
// index of the single video allowed to autoplay. There is no pagination;
// the server returns the whole list at once.
type Controller struct {
	api      *api.Client
	username string

	mu      sync.Mutex
	videos  []api.VideoPost
	loading bool
	current int
}

func NewController(client *api.Client, username string) *Controller {
	return &Controller{
		api:      client,
		username: username,
	}
}

func (c *Controller) Load() error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.mu.Unlock()

	videos, err := c.api.ExploreVideos()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		return err
	}

	c.videos = videos
	c.current = 0

	return nil
}

// ToggleLike mirrors the feed controller: local flip first, server call
// second, no rollback on failure.
func (c *Controller) ToggleLike(mediaPath string) error {
	c.mu.Lock()
	idx := -1
	for i := range c.videos {
		if c.videos[i].MediaPath == mediaPath {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("no video with media %q", mediaPath)
	}
	c.videos[idx].Likes = toggleMember(c.videos[idx].Likes, c.username)
	c.mu.Unlock()

	return c.api.Like(c.username, mediaPath)
}

// SettleScroll recomputes the active index after the scroll settles. The
// item whose slot is nearest the offset wins; indexes past the list are
// ignored and the previous index stays active. Recomputing only on settle
// trades precision for update frequency.
func (c *Controller) SettleScroll(offset, itemHeight float64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if itemHeight <= 0 {
		return c.current
	}

	idx := int(math.Round(offset / itemHeight))
	if idx >= 0 && idx < len(c.videos) {
		c.current = idx
	}

	return c.current
}

// ActiveIndex returns the index of the only video allowed to autoplay.
func (c *Controller) ActiveIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) Videos() []api.VideoPost {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]api.VideoPost(nil), c.videos...)
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func toggleMember(likes []string, username string) []string {
	for i, u := range likes {
		if u == username {
			return append(likes[:i], likes[i+1:]...)
		}
	}
	return append(likes, username)
}
