// Package frequency caches per-attribute child-code record counts for the
// lifetime of a session. Tables are fetched lazily and never invalidated:
// the review database is read-only from our side, and the original UI makes
// the same staleness assumption.
package frequency

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/eppi-vis/dashboard/pkg/eppi"
)

// Row is one child code with its record count.
type Row struct {
	Code        string `json:"code"`
	Count       int64  `json:"count"`
	AttributeID int64  `json:"attributeId"`
	SetID       int64  `json:"setId"`
}

// Table holds the counts for all children of one attribute. Rows are unique
// by AttributeID.
type Table []Row

// CountFor returns the count for the given child attribute id.
func (t Table) CountFor(attributeID int64) (int64, bool) {
	for _, row := range t {
		if row.AttributeID == attributeID {
			return row.Count, true
		}
	}
	return 0, false
}

// Codes returns the child code names in table order.
func (t Table) Codes() []string {
	codes := make([]string, len(t))
	for i, row := range t {
		codes[i] = row.Code
	}
	return codes
}

// Fetcher is the remote side of the cache.
type Fetcher interface {
	FetchFrequencies(ctx context.Context, attributeID, setID int64, included bool) ([]eppi.FrequencyRow, error)
}

// Cache memoizes frequency tables keyed by (attributeId, setId). Concurrent
// requests for the same missing key collapse into a single remote fetch;
// fetch errors are returned to all waiters and not cached.
type Cache struct {
	fetcher Fetcher

	mu     sync.RWMutex
	tables map[string]Table
	group  singleflight.Group
}

// NewCache creates an empty cache backed by fetcher.
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher: fetcher,
		tables:  make(map[string]Table),
	}
}

func cacheKey(attributeID, setID int64) string {
	return fmt.Sprintf("%d_%d", attributeID, setID)
}

// Get returns the table for (attributeID, setID), fetching it on first use.
func (c *Cache) Get(ctx context.Context, attributeID, setID int64) (Table, error) {
	key := cacheKey(attributeID, setID)

	c.mu.RLock()
	table, ok := c.tables[key]
	c.mu.RUnlock()
	if ok {
		return table, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		table, ok := c.tables[key]
		c.mu.RUnlock()
		if ok {
			return table, nil
		}

		rows, err := c.fetcher.FetchFrequencies(ctx, attributeID, setID, true)
		if err != nil {
			return nil, err
		}

		table = make(Table, 0, len(rows))
		seen := make(map[int64]bool, len(rows))
		for _, row := range rows {
			if seen[row.AttributeID] {
				continue
			}
			seen[row.AttributeID] = true
			table = append(table, Row{
				Code:        row.Attribute,
				Count:       row.ItemCount,
				AttributeID: row.AttributeID,
				SetID:       row.SetID,
			})
		}

		c.mu.Lock()
		c.tables[key] = table
		c.mu.Unlock()
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(Table), nil
}

// Peek returns the cached table for (attributeID, setID) without fetching.
func (c *Cache) Peek(attributeID, setID int64) (Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	table, ok := c.tables[cacheKey(attributeID, setID)]
	return table, ok
}

// Len reports how many tables are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}
