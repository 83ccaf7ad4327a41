// Package records retrieves bibliographic records from the review database:
// OR-merged retrieval across several attributes and server-paginated AND
// retrieval over a combined filter.
package records

import (
	"context"
	"fmt"
	"strings"

	"github.com/maypok86/otter"

	"github.com/eppi-vis/dashboard/pkg/eppi"
	"github.com/eppi-vis/dashboard/pkg/taxonomy"
)

// Source is the remote side of record retrieval.
type Source interface {
	ListByCode(ctx context.Context, attributeID, setID int64) ([]eppi.Record, error)
	ListFirstPage(ctx context.Context, attributeIDs, setIDs []int64) ([]eppi.Record, int64, error)
	ListPage(ctx context.Context, pageNumber int, description string, attributeIDs, setIDs []int64) ([]eppi.Record, error)
}

type pageEntry struct {
	records []eppi.Record
	total   int64
}

// Retriever fetches records through a Source. Page fetches are pure
// functions of their arguments, so they are memoized in a bounded cache;
// per-code fetches are not, matching the original behaviour.
type Retriever struct {
	source Source
	pages  otter.Cache[string, pageEntry]
}

// NewRetriever creates a Retriever memoizing up to cacheSize page fetches.
func NewRetriever(source Source, cacheSize int) (*Retriever, error) {
	if cacheSize <= 0 {
		cacheSize = 256
	}
	pages, err := otter.MustBuilder[string, pageEntry](cacheSize).Build()
	if err != nil {
		return nil, err
	}
	return &Retriever{source: source, pages: pages}, nil
}

// ByAttributesOr retrieves the records tagged with any of the given
// attributes. Results are concatenated in input order and deduplicated by
// itemId, first occurrence wins. The returned counts hold the raw result
// size per attribute, before deduplication, for search documentation.
// An empty attribute list yields an empty result without any fetch.
func (r *Retriever) ByAttributesOr(ctx context.Context, attributes []taxonomy.Attribute) ([]eppi.Record, []int, error) {
	var merged []eppi.Record
	counts := make([]int, 0, len(attributes))
	seen := make(map[int64]bool)

	for _, attr := range attributes {
		batch, err := r.source.ListByCode(ctx, attr.ID, attr.SetID)
		if err != nil {
			return nil, nil, err
		}
		counts = append(counts, len(batch))
		for _, rec := range batch {
			if seen[rec.ItemID] {
				continue
			}
			seen[rec.ItemID] = true
			merged = append(merged, rec)
		}
	}
	return merged, counts, nil
}

// FirstPage retrieves the first page of an AND search plus the total match
// count. Memoized by the full argument tuple.
func (r *Retriever) FirstPage(ctx context.Context, attributeIDs, setIDs []int64) ([]eppi.Record, int64, error) {
	key := fmt.Sprintf("first|%s|%s", joinKey(attributeIDs), joinKey(setIDs))
	if entry, ok := r.pages.Get(key); ok {
		return entry.records, entry.total, nil
	}

	page, total, err := r.source.ListFirstPage(ctx, attributeIDs, setIDs)
	if err != nil {
		return nil, 0, err
	}
	r.pages.Set(key, pageEntry{records: page, total: total})
	return page, total, nil
}

// Page retrieves one follow-up page of an AND search. Memoized by the full
// argument tuple.
func (r *Retriever) Page(ctx context.Context, pageNumber int, description string, attributeIDs, setIDs []int64) ([]eppi.Record, error) {
	key := fmt.Sprintf("page|%d|%s|%s|%s", pageNumber, description, joinKey(attributeIDs), joinKey(setIDs))
	if entry, ok := r.pages.Get(key); ok {
		return entry.records, nil
	}

	page, err := r.source.ListPage(ctx, pageNumber, description, attributeIDs, setIDs)
	if err != nil {
		return nil, err
	}
	r.pages.Set(key, pageEntry{records: page})
	return page, nil
}

// AllPages retrieves the complete AND result set: the first page, then every
// follow-up page in order.
func (r *Retriever) AllPages(ctx context.Context, description string, attributeIDs, setIDs []int64) ([]eppi.Record, int64, error) {
	all, total, err := r.FirstPage(ctx, attributeIDs, setIDs)
	if err != nil {
		return nil, 0, err
	}

	lastPage := int((total + eppi.PageSize - 1) / eppi.PageSize)
	for pageNumber := 1; pageNumber < lastPage; pageNumber++ {
		page, err := r.Page(ctx, pageNumber, description, attributeIDs, setIDs)
		if err != nil {
			return nil, 0, err
		}
		all = append(all, page...)
	}
	return all, total, nil
}

func joinKey(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}
