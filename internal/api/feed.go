// SPDX-License-Identifier: AGPL-3.0-only
package api

import "fmt"

// FeedPageSize is the number of posts the server returns per full page. A
// shorter page means the feed has no more data.
const FeedPageSize = 5

// FeedPage fetches one page of image posts. The page token is an offset
// into the server's ordered post list, advanced in FeedPageSize steps.
func (c *Client) FeedPage(page int) ([]Post, error) {
	var posts []Post
	if err := c.getJSON(fmt.Sprintf("/feed/images/%d", page), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ExploreVideos fetches the full video feed, most liked first.
func (c *Client) ExploreVideos() ([]VideoPost, error) {
	var videos []VideoPost
	if err := c.getJSON("/explore/videos", &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// Like tells the server the given user toggled their like on a post. The
// server flips membership itself, so the same call both likes and unlikes.
func (c *Client) Like(username, mediaPath string) error {
	payload := struct {
		Username  string `json:"username"`
		MediaPath string `json:"mediaPath"`
	}{username, mediaPath}

	return c.postJSON("/like", payload, nil)
}

func (c *Client) AddComment(mediaPath string, comment Comment) error {
	payload := struct {
		MediaPath string  `json:"mediaPath"`
		Comment   Comment `json:"comment"`
	}{mediaPath, comment}

	return c.postJSON("/add-comment", payload, nil)
}
