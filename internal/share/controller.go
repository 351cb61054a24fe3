// SPDX-License-Identifier: AGPL-3.0-only
package share

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mirrorapp/mirror/internal/api"
	"github.com/mirrorapp/mirror/internal/helpers"
)

// ErrIncompleteDraft is the local validation failure for a submit without
// both a caption and a media selection. No network call is made.
var ErrIncompleteDraft = errors.New("a caption and a media selection are both required")

// Thumbnailer derives a local preview image for a media file.
type Thumbnailer interface {
	ImageThumb(src string) (string, error)
	VideoThumb(src string) (string, error)
}

// Draft is the single pending upload. It exists only in memory for the
// duration of the compose flow.
type Draft struct {
	Text      string
	MediaPath string
	MediaType string
	Thumbnail string
}

// Controller owns the compose flow: one draft slot that every media
// acquisition action overwrites, and a submit that clears it only on
// success.
type Controller struct {
	api      *api.Client
	username string
	thumbs   Thumbnailer

	mu         sync.Mutex
	draft      Draft
	submitting bool
}

func NewController(client *api.Client, username string, thumbs Thumbnailer) *Controller {
	return &Controller{
		api:      client,
		username: username,
		thumbs:   thumbs,
	}
}

func (c *Controller) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Text = text
}

// PickMedia fills the media slot from a library selection, inferring the
// type from the extension. Any prior selection is overwritten. Videos get a
// derived thumbnail before preview; images preview as themselves. A failed
// derivation keeps the selection with no preview and reports the error.
func (c *Controller) PickMedia(path string) error {
	mediaType, err := helpers.MediaTypeFromPath(path)
	if err != nil {
		return err
	}
	if mediaType == api.MediaVideo {
		return c.setMedia(path, api.MediaVideo)
	}
	return c.setMedia(path, api.MediaImage)
}

// CapturePhoto fills the media slot from a camera photo capture.
func (c *Controller) CapturePhoto(path string) error {
	return c.setMedia(path, api.MediaImage)
}

// CaptureVideo fills the media slot from a camera video capture.
func (c *Controller) CaptureVideo(path string) error {
	return c.setMedia(path, api.MediaVideo)
}

func (c *Controller) setMedia(path, mediaType string) error {
	thumbnail := path
	var thumbErr error
	if mediaType == api.MediaVideo {
		thumbnail, thumbErr = c.thumbs.VideoThumb(path)
		if thumbErr != nil {
			thumbnail = ""
		}
	}

	c.mu.Lock()
	c.draft.MediaPath = path
	c.draft.MediaType = mediaType
	c.draft.Thumbnail = thumbnail
	c.mu.Unlock()

	return thumbErr
}

// Submit sends the draft as one multipart request. On success the whole
// draft is cleared; on failure it is preserved so a retry needs no
// re-selection.
func (c *Controller) Submit() error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil
	}
	draft := c.draft
	if !draft.Complete() {
		c.mu.Unlock()
		return ErrIncompleteDraft
	}
	c.submitting = true
	c.mu.Unlock()

	err := c.upload(draft)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err != nil {
		return err
	}

	c.draft = Draft{}
	return nil
}

func (c *Controller) upload(draft Draft) error {
	f, err := os.Open(draft.MediaPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.api.Share(c.username, draft.Text, draft.MediaType, filepath.Base(draft.MediaPath), f)
}

// Discard drops the draft, as navigating away from the compose screen does.
func (c *Controller) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = Draft{}
}

func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Complete reports whether the draft can be submitted: non-blank caption
// and a populated media slot.
func (d Draft) Complete() bool {
	return strings.TrimSpace(d.Text) != "" && d.MediaPath != ""
}
