// SPDX-License-Identifier: AGPL-3.0-only
package api

import (
	"encoding/json"
	"fmt"
)

const (
	MediaImage = "image"
	MediaVideo = "video"
)

// Comment is one (username, text) pair. The server stores comments as
// two-element JSON arrays, so the wire form is ["username", "text"].
type Comment struct {
	Username string
	Text     string
}

func (c Comment) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{c.Username, c.Text})
}

func (c *Comment) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("comment must be a [username, text] pair, got %d elements", len(pair))
	}
	c.Username = pair[0]
	c.Text = pair[1]
	return nil
}

// Post is the client-side projection of a shared unit of content. MediaPath
// is its identity within a fetched list.
type Post struct {
	Text      string    `json:"text"`
	MediaPath string    `json:"mediaPath"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	Username  string    `json:"username"`
}

// VideoPost is a Post without comments, as returned by the explore feed.
type VideoPost struct {
	Text      string   `json:"text"`
	MediaPath string   `json:"mediaPath"`
	Likes     []string `json:"likes"`
	Username  string   `json:"username"`
}

type ProfilePost struct {
	MediaPath string `json:"mediaPath"`
	Type      string `json:"type"`
}

type ProfileSummary struct {
	ProfilePhoto string        `json:"profilePhoto"`
	Followers    []string      `json:"followers"`
	Following    []string      `json:"following"`
	Posts        []ProfilePost `json:"posts"`
}
