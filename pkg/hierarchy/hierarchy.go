// Package hierarchy derives the parent/child value table that containment
// charts (sunburst, treemap, icicle) consume from the attribute model and
// the frequency cache.
package hierarchy

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/eppi-vis/dashboard/pkg/frequency"
	"github.com/eppi-vis/dashboard/pkg/logger"
	"github.com/eppi-vis/dashboard/pkg/taxonomy"
)

// Row is one chart segment: a display label, its parent's label (empty for
// roots) and the segment value.
type Row struct {
	Character string `json:"character"`
	Parent    string `json:"parent"`
	Value     int64  `json:"value"`
}

// FrequencySource yields the child-count table for a parent attribute.
type FrequencySource interface {
	Get(ctx context.Context, attributeID, setID int64) (frequency.Table, error)
	Peek(attributeID, setID int64) (frequency.Table, bool)
}

const prefetchParallelism = 4

// Build produces the hierarchy rows for the whole model.
//
// Every attribute contributes one row. Its value is looked up in the parent's
// frequency table; a missing table or missing entry counts as zero, which is
// the expected cold-cache steady state, not an error. Tables for all parent
// attributes are prefetched through the cache first; individual fetch
// failures are logged and degrade to zero counts so one flaky attribute does
// not take down the whole view.
func Build(ctx context.Context, model *taxonomy.Model, freqs FrequencySource) ([]Row, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchParallelism)
	for _, parent := range model.Parents() {
		parent := parent
		g.Go(func() error {
			if _, err := freqs.Get(gctx, parent.ID, parent.SetID); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				logger.Warn("Frequency fetch failed, counting zero",
					"attributeId", parent.ID, "setId", parent.SetID, "err", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(model.Attributes))
	for _, attr := range model.Attributes {
		parentName := ""
		if attr.ParentID != 0 {
			parentName = model.NameOf(attr.ParentID)
		}

		var value int64
		if table, ok := freqs.Peek(attr.ParentID, attr.SetID); ok {
			if count, ok := table.CountFor(attr.ID); ok {
				value = count
			}
		}

		rows = append(rows, Row{Character: attr.Name, Parent: parentName, Value: value})
	}

	return Clean(rows), nil
}

// Clean deduplicates labels and re-aggregates values so the table can be
// rendered as a containment chart without double counting.
//
// Labels that occur more than once are rewritten to "name (parent)" on every
// colliding row that has a parent. A node that appears as someone's parent
// takes the sum of its children's values and discards its own observed
// count; a leaf keeps its own count (plus a children sum of zero).
func Clean(rows []Row) []Row {
	labelCount := make(map[string]int, len(rows))
	for _, row := range rows {
		labelCount[row.Character]++
	}

	cleaned := make([]Row, len(rows))
	for i, row := range rows {
		if labelCount[row.Character] > 1 && row.Parent != "" {
			row.Character = fmt.Sprintf("%s (%s)", row.Character, row.Parent)
		}
		cleaned[i] = row
	}

	childSums := make(map[string]int64, len(cleaned))
	isParent := make(map[string]bool, len(cleaned))
	for _, row := range cleaned {
		childSums[row.Parent] += row.Value
		isParent[row.Parent] = true
	}

	for i, row := range cleaned {
		value := childSums[row.Character]
		if !isParent[row.Character] {
			value += row.Value
		}
		if value < 0 {
			value = 0
		}
		cleaned[i].Value = value
	}
	return cleaned
}
