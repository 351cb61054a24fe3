// SPDX-License-Identifier: AGPL-3.0-only
package thumbs

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}

	path := filepath.Join(dir, "src.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create source image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode source image: %v", err)
	}
	return path
}

func TestImageThumbScalesDown(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGenerator(filepath.Join(dir, "thumbs"))
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	src := writePNG(t, dir, 640, 480)

	out, err := g.ImageThumb(src)
	if err != nil {
		t.Fatalf("ImageThumb failed: %v", err)
	}
	if !strings.HasSuffix(out, ".jpg") {
		t.Errorf("thumbnails are JPEGs, got %q", out)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open thumbnail: %v", err)
	}
	defer f.Close()
	thumb, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("thumbnail is not a valid JPEG: %v", err)
	}

	b := thumb.Bounds()
	if b.Dx() != ThumbWidth {
		t.Errorf("thumbnail width = %d, want %d", b.Dx(), ThumbWidth)
	}
	if b.Dy() != 240 {
		t.Errorf("aspect ratio not preserved, height = %d, want 240", b.Dy())
	}
}

func TestImageThumbSmallSourceUnscaled(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGenerator(filepath.Join(dir, "thumbs"))
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	src := writePNG(t, dir, 100, 80)

	out, err := g.ImageThumb(src)
	if err != nil {
		t.Fatalf("ImageThumb failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open thumbnail: %v", err)
	}
	defer f.Close()
	thumb, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("thumbnail is not a valid JPEG: %v", err)
	}

	if b := thumb.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("small sources pass through unscaled, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestImageThumbBadSource(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGenerator(filepath.Join(dir, "thumbs"))
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	if _, err := g.ImageThumb(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected an error for a missing source")
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	if _, err := g.ImageThumb(garbage); err == nil {
		t.Error("expected an error for an undecodable source")
	}
}

func TestVideoThumbMissingFFmpeg(t *testing.T) {
	thumbDir := filepath.Join(t.TempDir(), "thumbs")
	g, err := NewGenerator(thumbDir)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	g.ffmpeg = "definitely-not-ffmpeg"

	if _, err := g.VideoThumb("clip.mp4"); err == nil {
		t.Fatal("expected an error when ffmpeg is unavailable")
	}

	entries, err := os.ReadDir(thumbDir)
	if err != nil {
		t.Fatalf("read thumbnail dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("a failed extraction should leave no file, found %d", len(entries))
	}
}
