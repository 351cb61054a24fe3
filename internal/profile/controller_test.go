// SPDX-License-Identifier: AGPL-3.0-only
package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mirrorapp/mirror/internal/api"
)

// fakeThumbs fails for sources it is told to and records what it saw.
type fakeThumbs struct {
	mu       sync.Mutex
	failFor  string
	requests []string
}

func (f *fakeThumbs) VideoThumb(src string) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, src)
	f.mu.Unlock()
	if f.failFor != "" && strings.Contains(src, f.failFor) {
		return "", errors.New("derive failed")
	}
	return src + ".thumb.jpg", nil
}

func (f *fakeThumbs) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func newProfileServer(summary api.ProfileSummary, followingCount int) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/profile/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(summary)
	})
	mux.HandleFunc("/follow", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{"followingCount": followingCount})
	})
	return httptest.NewServer(mux)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %s", what)
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func TestLoad(t *testing.T) {
	srv := newProfileServer(api.ProfileSummary{
		ProfilePhoto: "me.jpg",
		Followers:    []string{"bob", "carol"},
		Following:    []string{"bob"},
		Posts: []api.ProfilePost{
			{MediaPath: "oldest.jpg", Type: api.MediaImage},
			{MediaPath: "middle.mp4", Type: api.MediaVideo},
			{MediaPath: "newest.jpg", Type: api.MediaImage},
		},
	}, 0)
	defer srv.Close()

	thumbs := &fakeThumbs{}
	c := NewController(api.NewClient(srv.URL, time.Second), "alice", thumbs)
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.ProfilePhoto() != "me.jpg" {
		t.Errorf("profile photo = %q", c.ProfilePhoto())
	}
	postCount, followers, following := c.Counts()
	if postCount != 3 || followers != 2 || following != 1 {
		t.Errorf("counts = (%d, %d, %d), want (3, 2, 1)", postCount, followers, following)
	}

	posts := c.Posts()
	if posts[0].MediaPath != "newest.jpg" || posts[2].MediaPath != "oldest.jpg" {
		t.Errorf("posts should render most recent first, got %+v", posts)
	}
}

// TestDeriveThumbnails runs the batch over a mixed grid: only videos get a
// derivation, and a failed one degrades to an empty entry.
func TestDeriveThumbnails(t *testing.T) {
	srv := newProfileServer(api.ProfileSummary{
		Posts: []api.ProfilePost{
			{MediaPath: "still.jpg", Type: api.MediaImage},
			{MediaPath: "good.mp4", Type: api.MediaVideo},
			{MediaPath: "broken.mp4", Type: api.MediaVideo},
		},
	}, 0)
	defer srv.Close()

	thumbs := &fakeThumbs{failFor: "broken.mp4"}
	c := NewController(api.NewClient(srv.URL, time.Second), "alice", thumbs)
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	waitFor(t, "the thumbnail batch", func() bool { return len(thumbs.seen()) == 2 && !c.ThumbnailsLoading() })

	// Reversed order puts broken.mp4 at 0, good.mp4 at 1, still.jpg at 2.
	if got := c.Thumbnail(1); !strings.HasSuffix(got, "good.mp4.thumb.jpg") {
		t.Errorf("expected a derived thumbnail for the good video, got %q", got)
	}
	if got := c.Thumbnail(0); got != "" {
		t.Errorf("a failed derivation should leave an empty entry, got %q", got)
	}
	if got := c.Thumbnail(2); got != "" {
		t.Errorf("image posts have no thumbnail entry, got %q", got)
	}

	seen := thumbs.seen()
	if len(seen) != 2 {
		t.Fatalf("expected 2 derivations, got %v", seen)
	}
	for _, src := range seen {
		if !strings.HasPrefix(src, srv.URL+"/file/") {
			t.Errorf("derivations should target the file endpoint, got %q", src)
		}
	}
}

func TestFollow(t *testing.T) {
	srv := newProfileServer(api.ProfileSummary{Following: []string{"bob"}}, 7)
	defer srv.Close()

	c := NewController(api.NewClient(srv.URL, time.Second), "alice", &fakeThumbs{})
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := c.Follow("carol"); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	if _, _, following := c.Counts(); following != 7 {
		t.Errorf("following should track the server count, got %d", following)
	}
}
