// SPDX-License-Identifier: AGPL-3.0-only
package share

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mirrorapp/mirror/internal/api"
)

// fakeThumbs records derivation calls without touching ffmpeg.
type fakeThumbs struct {
	calls int
	fail  bool
}

func (f *fakeThumbs) ImageThumb(src string) (string, error) {
	f.calls++
	if f.fail {
		return "", errors.New("derive failed")
	}
	return src + ".thumb.jpg", nil
}

func (f *fakeThumbs) VideoThumb(src string) (string, error) {
	f.calls++
	if f.fail {
		return "", errors.New("derive failed")
	}
	return src + ".thumb.jpg", nil
}

func newShareServer(requests *int32, fail bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(requests, 1)
		if fail {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "User not found."}`))
			return
		}
		w.Write([]byte(`{"message": "ok"}`))
	}))
}

func tempMedia(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("mediabytes"), 0o644); err != nil {
		t.Fatalf("write temp media: %v", err)
	}
	return path
}

func TestSubmitIncompleteDraft(t *testing.T) {
	var requests int32
	srv := newShareServer(&requests, false)
	defer srv.Close()

	c := NewController(api.NewClient(srv.URL, time.Second), "alice", &fakeThumbs{})

	// Nothing set at all.
	if err := c.Submit(); !errors.Is(err, ErrIncompleteDraft) {
		t.Fatalf("expected ErrIncompleteDraft, got %v", err)
	}

	// Caption only.
	c.SetText("just words")
	if err := c.Submit(); !errors.Is(err, ErrIncompleteDraft) {
		t.Fatalf("expected ErrIncompleteDraft, got %v", err)
	}

	// Whitespace caption with media.
	c.SetText("   ")
	if err := c.CapturePhoto(tempMedia(t, "a.jpg")); err != nil {
		t.Fatalf("CapturePhoto failed: %v", err)
	}
	if err := c.Submit(); !errors.Is(err, ErrIncompleteDraft) {
		t.Fatalf("expected ErrIncompleteDraft, got %v", err)
	}

	if atomic.LoadInt32(&requests) != 0 {
		t.Errorf("incomplete drafts must not reach the network, got %d requests", requests)
	}
}

func TestSubmitSuccessClearsDraft(t *testing.T) {
	var requests int32
	srv := newShareServer(&requests, false)
	defer srv.Close()

	c := NewController(api.NewClient(srv.URL, time.Second), "alice", &fakeThumbs{})
	c.SetText("beach day")
	if err := c.CapturePhoto(tempMedia(t, "beach.jpg")); err != nil {
		t.Fatalf("CapturePhoto failed: %v", err)
	}

	if err := c.Submit(); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if atomic.LoadInt32(&requests) != 1 {
		t.Errorf("expected 1 upload, got %d", requests)
	}
	if d := c.Draft(); d != (Draft{}) {
		t.Errorf("draft should be cleared after success, got %+v", d)
	}
}

func TestSubmitFailurePreservesDraft(t *testing.T) {
	var requests int32
	srv := newShareServer(&requests, true)
	defer srv.Close()

	c := NewController(api.NewClient(srv.URL, time.Second), "alice", &fakeThumbs{})
	c.SetText("beach day")
	path := tempMedia(t, "beach.jpg")
	if err := c.CapturePhoto(path); err != nil {
		t.Fatalf("CapturePhoto failed: %v", err)
	}

	err := c.Submit()
	if err == nil {
		t.Fatal("expected the rejection to surface")
	}
	if api.Detail(err) != "User not found." {
		t.Errorf("expected server detail, got %q", api.Detail(err))
	}

	d := c.Draft()
	if d.Text != "beach day" || d.MediaPath != path {
		t.Errorf("draft should survive a failed submit, got %+v", d)
	}
}

// TestPickMedia checks type inference and the single-slot overwrite.
func TestPickMedia(t *testing.T) {
	thumbs := &fakeThumbs{}
	c := NewController(api.NewClient("http://127.0.0.1:0", time.Second), "alice", thumbs)

	img := tempMedia(t, "cat.png")
	if err := c.PickMedia(img); err != nil {
		t.Fatalf("PickMedia failed: %v", err)
	}
	d := c.Draft()
	if d.MediaType != api.MediaImage || d.Thumbnail != img {
		t.Errorf("images preview as themselves, got %+v", d)
	}
	if thumbs.calls != 0 {
		t.Errorf("images need no derivation, got %d calls", thumbs.calls)
	}

	vid := tempMedia(t, "clip.mp4")
	if err := c.PickMedia(vid); err != nil {
		t.Fatalf("PickMedia failed: %v", err)
	}
	d = c.Draft()
	if d.MediaPath != vid || d.MediaType != api.MediaVideo {
		t.Errorf("selection should be overwritten, got %+v", d)
	}
	if d.Thumbnail != vid+".thumb.jpg" {
		t.Errorf("videos preview via a derived thumbnail, got %q", d.Thumbnail)
	}

	if err := c.PickMedia(tempMedia(t, "notes.txt")); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}

// TestVideoThumbFailure keeps the selection and reports the error.
func TestVideoThumbFailure(t *testing.T) {
	c := NewController(api.NewClient("http://127.0.0.1:0", time.Second), "alice", &fakeThumbs{fail: true})

	vid := tempMedia(t, "clip.mp4")
	if err := c.CaptureVideo(vid); err == nil {
		t.Fatal("expected the derivation failure to surface")
	}

	d := c.Draft()
	if d.MediaPath != vid || d.MediaType != api.MediaVideo {
		t.Errorf("selection should survive a failed derivation, got %+v", d)
	}
	if d.Thumbnail != "" {
		t.Errorf("failed derivation leaves no preview, got %q", d.Thumbnail)
	}
}

func TestDiscard(t *testing.T) {
	c := NewController(api.NewClient("http://127.0.0.1:0", time.Second), "alice", &fakeThumbs{})
	c.SetText("half done")
	if err := c.CapturePhoto(tempMedia(t, "a.jpg")); err != nil {
		t.Fatalf("CapturePhoto failed: %v", err)
	}

	c.Discard()
	if d := c.Draft(); d != (Draft{}) {
		t.Errorf("Discard should empty the draft, got %+v", d)
	}
}
