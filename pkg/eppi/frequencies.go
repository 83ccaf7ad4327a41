package eppi

import (
	"context"
	"net/url"
	"strconv"
)

// FetchFrequencies retrieves the per-child record counts for one attribute.
// A response without a results key is an empty table, not an error. Sentinel
// rows (attributeId <= 0, the service's "unclassified" aggregates) are
// filtered out here so no caller ever sees them.
func (c *Client) FetchFrequencies(ctx context.Context, attributeID, setID int64, included bool) ([]FrequencyRow, error) {
	form := url.Values{}
	form.Set("attId", strconv.FormatInt(attributeID, 10))
	form.Set("setId", strconv.FormatInt(setID, 10))
	form.Set("included", strconv.FormatBool(included))

	var resp frequenciesResponse
	if err := c.postForm(ctx, "Frequencies/GetFrequenciesJSON", form, &resp); err != nil {
		return nil, err
	}

	rows := make([]FrequencyRow, 0, len(resp.Results))
	for _, row := range resp.Results {
		if row.AttributeID <= 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchCrosstab retrieves record counts for every combination of the x and y
// attributes' child codes.
func (c *Client) FetchCrosstab(ctx context.Context, xAttributeID, xSetID, yAttributeID, ySetID int64) (*Crosstab, error) {
	form := url.Values{}
	form.Set("attIdx", strconv.FormatInt(xAttributeID, 10))
	form.Set("setIdx", strconv.FormatInt(xSetID, 10))
	form.Set("attIdy", strconv.FormatInt(yAttributeID, 10))
	form.Set("setIdy", strconv.FormatInt(ySetID, 10))
	form.Set("included", "true")
	form.Set("graphic", "table")

	var resp Crosstab
	if err := c.postForm(ctx, "Frequencies/GetCrosstabJSON", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
