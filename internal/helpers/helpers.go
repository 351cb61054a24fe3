// SPDX-License-Identifier: AGPL-3.0-only
package helpers

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/mirrorapp/mirror/internal/api"
)

// MediaTypeFromPath classifies a local media file by its extension.
func MediaTypeFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return api.MediaImage, nil
	case ".mp4", ".mov", ".webm", ".mkv", ".avi":
		return api.MediaVideo, nil
	default:
		return "", fmt.Errorf("unsupported media extension %q", filepath.Ext(path))
	}
}

// StripHTML reduces markup to its text content. Server detail messages pass
// through here before rendering so a tagged payload shows as plain text.
func StripHTML(input string) string {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return ""
	}

	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if b.Len() > 0 {
					b.WriteString(" ")
				}
				b.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}
