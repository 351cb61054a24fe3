// SPDX-License-Identifier: AGPL-3.0-only
package profile

import (
	"sync"

	"github.com/mirrorapp/mirror/internal/api"
)

// Thumbnailer derives a preview image for a remote video.
type Thumbnailer interface {
	VideoThumb(src string) (string, error)
}

// Controller owns one profile screen: a single fetch populating counts and
// the post grid, plus a concurrent thumbnail batch for video posts.
type Controller struct {
	api      *api.Client
	username string
	thumbs   Thumbnailer

	mu            sync.Mutex
	loading       bool
	thumbsLoading bool
	profilePhoto  string
	followers     int
	following     int
	posts         []api.ProfilePost
	thumbnails    map[int]string
}

func NewController(client *api.Client, username string, thumbs Thumbnailer) *Controller {
	return &Controller{
		api:      client,
		username: username,
		thumbs:   thumbs,
	}
}

// Load fetches the profile once, derives the counts from the follower and
// following lists, and reverses the post list so the most recent post
// renders first. Thumbnail derivation runs in the background afterwards.
func (c *Controller) Load() error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.mu.Unlock()

	summary, err := c.api.Profile(c.username)

	c.mu.Lock()
	c.loading = false
	if err != nil {
		c.mu.Unlock()
		return err
	}

	posts := make([]api.ProfilePost, len(summary.Posts))
	for i, p := range summary.Posts {
		posts[len(posts)-1-i] = p
	}

	c.profilePhoto = summary.ProfilePhoto
	c.followers = len(summary.Followers)
	c.following = len(summary.Following)
	c.posts = posts
	c.thumbnails = nil
	c.mu.Unlock()

	go c.DeriveThumbnails()

	return nil
}

// DeriveThumbnails launches one derivation per video post and waits for the
// whole batch. A failed item degrades to an empty thumbnail without
// blocking the others; the loading flag clears only when all settle.
func (c *Controller) DeriveThumbnails() {
	c.mu.Lock()
	posts := append([]api.ProfilePost(nil), c.posts...)
	c.thumbsLoading = true
	c.mu.Unlock()

	thumbnails := make(map[int]string)
	var wg sync.WaitGroup
	var tmu sync.Mutex

	for i, p := range posts {
		if p.Type != api.MediaVideo {
			continue
		}
		wg.Add(1)
		go func(i int, mediaPath string) {
			defer wg.Done()
			thumb, err := c.thumbs.VideoThumb(c.api.FileURL(mediaPath))
			if err != nil {
				thumb = ""
			}
			tmu.Lock()
			thumbnails[i] = thumb
			tmu.Unlock()
		}(i, p.MediaPath)
	}

	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.thumbnails = thumbnails
	c.thumbsLoading = false
}

// Follow asks the server to follow target and refreshes the following
// count from its reply.
func (c *Controller) Follow(target string) error {
	count, err := c.api.Follow(c.username, target)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.following = count

	return nil
}

func (c *Controller) ProfilePhoto() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profilePhoto
}

// Counts returns (posts, followers, following).
func (c *Controller) Counts() (int, int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.posts), c.followers, c.following
}

// Posts returns the grid in render order, most recent first.
func (c *Controller) Posts() []api.ProfilePost {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]api.ProfilePost(nil), c.posts...)
}

// Thumbnail returns the derived preview for the post at index i. Image
// posts render directly and have no entry here; a video whose derivation
// failed or has not settled yet returns "".
func (c *Controller) Thumbnail(i int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.thumbnails[i]
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) ThumbnailsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.thumbsLoading
}
