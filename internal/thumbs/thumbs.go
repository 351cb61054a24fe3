// SPDX-License-Identifier: AGPL-3.0-only
// Package thumbs derives preview thumbnails for local and remote media.
// Image thumbnails are decoded and rescaled in-process; video thumbnails
// take the first frame through the host's ffmpeg.
package thumbs

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gen2brain/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// ThumbWidth is the longest edge of a generated thumbnail.
const ThumbWidth = 320

type Generator struct {
	dir    string
	ffmpeg string
}

// NewGenerator creates the thumbnail directory if needed. Thumbnails are
// in-memory session artifacts conceptually; the directory only backs the
// current run and is safe to wipe between starts.
func NewGenerator(dir string) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create thumbnail dir: %w", err)
	}
	return &Generator{dir: dir, ffmpeg: "ffmpeg"}, nil
}

// ImageThumb decodes src (JPEG, PNG, GIF or WebP), scales it down to
// ThumbWidth and writes a JPEG preview into the thumbnail dir.
func (g *Generator) ImageThumb(src string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open media: %w", err)
	}
	defer f.Close()

	var img image.Image
	if strings.EqualFold(filepath.Ext(src), ".webp") {
		img, err = webp.Decode(f)
	} else {
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return "", fmt.Errorf("decode media: %w", err)
	}

	out := filepath.Join(g.dir, uuid.New().String()+".jpg")
	dst, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create thumbnail: %w", err)
	}
	defer dst.Close()

	if err := jpeg.Encode(dst, scale(img), &jpeg.Options{Quality: 85}); err != nil {
		os.Remove(out)
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}

	return out, nil
}

// VideoThumb extracts the first frame of src, which may be a local path or
// a URL, into a JPEG in the thumbnail dir.
func (g *Generator) VideoThumb(src string) (string, error) {
	out := filepath.Join(g.dir, uuid.New().String()+".jpg")

	cmd := exec.Command(g.ffmpeg, "-y", "-i", src, "-frames:v", "1", "-vf", fmt.Sprintf("scale=%d:-1", ThumbWidth), out)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(out)
		return "", fmt.Errorf("ffmpeg frame extraction: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	return out, nil
}

func scale(src image.Image) image.Image {
	b := src.Bounds()
	if b.Dx() <= ThumbWidth {
		return src
	}

	h := b.Dy() * ThumbWidth / b.Dx()
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, ThumbWidth, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	return dst
}
