package eppi

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// PageSize is the fixed page size the item list endpoints operate with.
const PageSize = 100

// ListByCode retrieves every record tagged with the given attribute.
func (c *Client) ListByCode(ctx context.Context, attributeID, setID int64) ([]Record, error) {
	form := url.Values{}
	form.Set("attId", strconv.FormatInt(attributeID, 10))
	form.Set("attName", strconv.FormatInt(setID, 10))

	var resp itemListResponse
	if err := c.postForm(ctx, "ItemList/GetFreqListJSON", form, &resp); err != nil {
		return nil, err
	}
	return resp.Items.Items, nil
}

// ListFirstPage retrieves the first page of records tagged with all of the
// given attributes (AND semantics) together with the total match count.
func (c *Client) ListFirstPage(ctx context.Context, attributeIDs, setIDs []int64) ([]Record, int64, error) {
	form := url.Values{}
	form.Set("WithAttIds", joinIDs(attributeIDs))
	form.Set("WithSetId", joinIDs(setIDs))
	form.Set("WithoutAttIds", "")
	form.Set("WithoutSetId", "")
	form.Set("included", "true")

	var resp itemListResponse
	if err := c.postForm(ctx, "ItemList/GetListWithWithoutAttsJSON", form, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Items.Items, resp.Items.TotalItemCount, nil
}

// ListPage retrieves one follow-up page of an AND search via the criteria
// endpoint. Page numbering matches the service's: the first follow-up page
// is page 1.
func (c *Client) ListPage(ctx context.Context, pageNumber int, description string, attributeIDs, setIDs []int64) ([]Record, error) {
	form := critForm(c.webDBID)
	form.Set("listType", "WebDbWithWithoutCodes")
	form.Set("pageNumber", strconv.Itoa(pageNumber))
	form.Set("description", description)
	form.Set("withAttributesIds", joinIDs(attributeIDs))
	form.Set("withSetIdsList", joinIDs(setIDs))

	var resp itemListResponse
	if err := c.postForm(ctx, "ItemList/ListFromCritJson", form, &resp); err != nil {
		return nil, err
	}
	return resp.Items.Items, nil
}

// ListByText retrieves records matching a free-text query over the given
// search field (e.g. TitleAbstract).
func (c *Client) ListByText(ctx context.Context, field, query string) ([]Record, error) {
	form := critForm(c.webDBID)
	form.Set("listType", "WebDbSearch")
	form.Set("description", "Search results for web-application")
	form.Set("searchWhat", field)
	form.Set("searchString", query)

	var resp itemListResponse
	if err := c.postForm(ctx, "ItemList/ListFromCritJson", form, &resp); err != nil {
		return nil, err
	}
	return resp.Items.Items, nil
}

// YearHistogram retrieves the publication year distribution of the whole
// database.
func (c *Client) YearHistogram(ctx context.Context) ([]YearCount, error) {
	var buckets []YearCount
	if err := c.getJSON(ctx, "Review/YearHistogramJSON", &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// TotalCount retrieves the total number of records in the database.
func (c *Client) TotalCount(ctx context.Context) (int64, error) {
	var resp itemListResponse
	if err := c.getJSON(ctx, "ItemList/IndexJSON", &resp); err != nil {
		return 0, err
	}
	return resp.Items.TotalItemCount, nil
}

// critForm builds the baseline criteria payload ListFromCritJson expects.
// Every field has to be present even when unused.
func critForm(webDBID int) url.Values {
	form := url.Values{}
	form.Set("onlyIncluded", "true")
	form.Set("showDeleted", "false")
	form.Set("sourceId", "0")
	form.Set("searchId", "0")
	form.Set("xAxisSetId", "0")
	form.Set("xAxisAttributeId", "0")
	form.Set("yAxisSetId", "0")
	form.Set("yAxisAttributeId", "0")
	form.Set("filterSetId", "0")
	form.Set("filterAttributeId", "0")
	form.Set("attributeSetIdList", "")
	form.Set("pageNumber", "0")
	form.Set("pageSize", strconv.Itoa(PageSize))
	form.Set("totalItems", "0")
	form.Set("startPage", "0")
	form.Set("endPage", "0")
	form.Set("startIndex", "0")
	form.Set("endIndex", "0")
	form.Set("workAllocationId", "0")
	form.Set("comparisonId", "0")
	form.Set("magSimulationId", "0")
	form.Set("contactId", "0")
	form.Set("setId", "0")
	form.Set("showInfoColumn", "false")
	form.Set("showScoreColumn", "false")
	form.Set("webDbId", strconv.Itoa(webDBID))
	form.Set("withAttributesIds", "")
	form.Set("withSetIdsList", "")
	form.Set("withOutAttributesIdsList", "")
	form.Set("withOutSetIdsList", "")
	form.Set("searchWhat", "")
	form.Set("searchString", "")
	return form
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
