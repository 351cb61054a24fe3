// SPDX-License-Identifier: AGPL-3.0-only
package api

func (c *Client) Profile(username string) (*ProfileSummary, error) {
	var summary ProfileSummary
	if err := c.getJSON("/profile/"+username, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Follow asks the server to add currentUser as a follower of targetUser and
// returns the caller's updated following count. Following an already
// followed user is a no-op server-side.
func (c *Client) Follow(currentUser, targetUser string) (int, error) {
	payload := struct {
		CurrentUser string `json:"currentUser"`
		TargetUser  string `json:"targetUser"`
	}{currentUser, targetUser}

	var result struct {
		FollowingCount int `json:"followingCount"`
	}
	if err := c.postJSON("/follow", payload, &result); err != nil {
		return 0, err
	}

	return result.FollowingCount, nil
}
