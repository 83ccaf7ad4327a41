package eppi

import "context"

// FetchReviewSets retrieves the full nested classification forest, one entry
// per taxonomy set.
func (c *Client) FetchReviewSets(ctx context.Context) ([]AttributeNode, error) {
	var sets []AttributeNode
	if err := c.getJSON(ctx, "ReviewSetList/FetchJSON", &sets); err != nil {
		return nil, err
	}
	return sets, nil
}
